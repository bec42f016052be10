// Package whatsapp synthesizes product records from the public metadata
// page WhatsApp serves for catalog share links. It is a best-effort
// enrichment step: every failure mode degrades to "no result".
package whatsapp

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/nee-commerce/backend/internal/config"
	"github.com/nee-commerce/backend/internal/models"
	"github.com/nee-commerce/backend/pkg/walink"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	titleSeparator   = " from "
	whatsappSuffix   = " on WhatsApp"
	defaultShopName  = "WhatsApp Shop"
	descriptionBreak = " · " // " · " separates text from the price/tag cluster
)

var (
	ogTitlePattern       = regexp.MustCompile(`<meta[^>]*property="og:title"[^>]*content="([^"]*)"`)
	ogDescriptionPattern = regexp.MustCompile(`<meta[^>]*property="og:description"[^>]*content="([^"]*)"`)
	ogImagePattern       = regexp.MustCompile(`<meta[^>]*property="og:image"[^>]*content="([^"]*)"`)
	htmlTitlePattern     = regexp.MustCompile(`<title[^>]*>([^<]*)</title>`)

	// "NGN 5,000" or "₦5,000.50"; separators stripped before parsing.
	pricePattern   = regexp.MustCompile(`(?:NGN|\x{20a6})\s*([\d,]+(?:\.\d+)?)`)
	hashtagPattern = regexp.MustCompile(`#\w+`)
)

// Scraper resolves a share link into a synthesized product record.
type Scraper interface {
	Scrape(ctx context.Context, url string) *models.ResolvedProduct
}

type scraper struct {
	httpClient    *http.Client
	fallbackImage string
}

func NewScraper(cfg *config.Config) Scraper {
	return &scraper{
		httpClient: &http.Client{
			Timeout: cfg.Scraper.Timeout,
		},
		fallbackImage: cfg.Scraper.FallbackImage,
	}
}

// Scrape fetches url and extracts a product from its open-graph metadata.
// It returns nil when no product can be synthesized; the cause is logged
// but never propagated.
func (s *scraper) Scrape(ctx context.Context, url string) *models.ResolvedProduct {
	url = repairScheme(url)

	body, finalURL, err := s.fetch(ctx, url)
	if err != nil {
		log.Warnw(ctx, "scrape fetch failed", "url", url, "error", err)
		return nil
	}

	title := firstMatch(ogTitlePattern, body)
	if title == "" {
		title = firstMatch(htmlTitlePattern, body)
	}
	if title == "" {
		log.Warnw(ctx, "scrape found no title", "url", finalURL)
		return nil
	}

	title = html.UnescapeString(title)
	description := html.UnescapeString(firstMatch(ogDescriptionPattern, body))
	image := html.UnescapeString(firstMatch(ogImagePattern, body))

	whatsappID := walink.ExtractProductID(finalURL)
	if walink.IsShareLink(whatsappID) {
		// Final URL matched no known link shape; no usable id.
		whatsappID = ""
	}

	product := &models.ResolvedProduct{
		Product: models.Product{
			Code:        syncCode(whatsappID),
			WhatsappID:  whatsappID,
			Name:        productName(title),
			Price:       extractPrice(description),
			Description: cleanDescription(description),
			Image:       image,
			AutoSynced:  true,
		},
		BusinessName: businessName(title),
	}
	if product.Image == "" {
		product.Image = s.fallbackImage
	}
	product.BusinessSlug = "wa-" + strings.ReplaceAll(strings.ToLower(product.BusinessName), " ", "-")

	return product
}

func (s *scraper) fetch(ctx context.Context, url string) (body, finalURL string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	// Browser-identifying headers; WhatsApp serves bots an empty shell.
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("fetch: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}

	// The client follows redirects; Request.URL holds where we ended up.
	finalURL = url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	log.Debugw(ctx, "scrape fetched",
		"url", url,
		"final_url", finalURL,
		"bytes", len(data),
		"took", time.Since(start),
	)
	return string(data), finalURL, nil
}

// repairScheme fixes the single-slash scheme typo ("http:/wa.me/...")
// that pasted links sometimes carry.
func repairScheme(url string) string {
	if strings.HasPrefix(url, "http:/") && !strings.HasPrefix(url, "http://") {
		return "https://" + strings.TrimPrefix(url, "http:/")
	}
	return url
}

func firstMatch(re *regexp.Regexp, body string) string {
	if m := re.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// productName derives the product name from a metadata title shaped like
// "Slim Tea Detox from Apinke Herbs on WhatsApp".
func productName(title string) string {
	name := title
	if idx := strings.Index(name, titleSeparator); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSuffix(name, whatsappSuffix)
	name = hashtagPattern.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// businessName pulls the merchant name out of the title, defaulting to
// "WhatsApp Shop" when the title carries no merchant segment.
func businessName(title string) string {
	idx := strings.Index(title, titleSeparator)
	if idx < 0 {
		return defaultShopName
	}
	name := title[idx+len(titleSeparator):]
	name = strings.TrimSuffix(name, whatsappSuffix)
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultShopName
	}
	return name
}

// extractPrice finds the first NGN/₦ token in the description and parses
// its digits. Missing or unparseable prices come back as 0.
func extractPrice(description string) float64 {
	m := pricePattern.FindStringSubmatch(description)
	if m == nil {
		return 0
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	return price
}

// cleanDescription keeps the free-text segment before the embedded
// price/tag cluster and flattens it to a single line.
func cleanDescription(description string) string {
	if idx := strings.Index(description, descriptionBreak); idx >= 0 {
		description = description[:idx]
	}
	description = hashtagPattern.ReplaceAllString(description, "")
	description = strings.ReplaceAll(description, "\n", " ")
	return strings.TrimSpace(description)
}

// syncCode assigns the SYNC-prefixed code for scraped records.
func syncCode(whatsappID string) string {
	if whatsappID == "" {
		return "SYNC-AUTO"
	}
	if len(whatsappID) < 4 {
		return "SYNC-" + whatsappID
	}
	return "SYNC-" + whatsappID[len(whatsappID)-4:]
}
