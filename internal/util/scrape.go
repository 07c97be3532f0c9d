package util

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// Some job boards block default Go user agents.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/85.0.4183.121 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; WOW64; Trident/7.0; AS; rv:11.0) like Gecko",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:89.0) Gecko/20100101 Firefox/89.0",
}

// ScrapeJobPosting fetches a job-posting page and returns its visible body
// text collapsed to single spaces.
func ScrapeJobPosting(ctx context.Context, url string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("User-Agent", userAgents[rand.Intn(len(userAgents))]).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch URL: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch URL failed with status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if text == "" {
		return "", fmt.Errorf("no text found at URL")
	}
	return text, nil
}
