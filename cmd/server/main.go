package main

import "github.com/nee-commerce/backend/cmd"

func main() {
	cmd.Execute()
}
