package preview

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/fsdevblog/screws/internal/models"
)

// parseMeta вытаскивает og:* теги из head. Если og тегов нет, используются
// <title> и <meta name="description">. Разбор заканчивается на <body>.
func parseMeta(r io.Reader, baseURL string) (*models.Preview, error) {
	var og, fallback models.Preview
	var inTitle bool

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return merge(og, fallback, baseURL), nil
			}
			return nil, fmt.Errorf("parse html: %w", z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			switch string(name) {
			case "body":
				return merge(og, fallback, baseURL), nil
			case "title":
				inTitle = tt == html.StartTagToken
			case "meta":
				if hasAttr {
					applyMeta(z, &og, &fallback)
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "head":
				return merge(og, fallback, baseURL), nil
			case "title":
				inTitle = false
			}
		case html.TextToken:
			if inTitle && fallback.Title == "" {
				fallback.Title = strings.TrimSpace(string(z.Text()))
			}
		case html.CommentToken, html.DoctypeToken:
		}
	}
}

func applyMeta(z *html.Tokenizer, og, fallback *models.Preview) {
	var key, content string
	for {
		k, v, more := z.TagAttr()
		switch strings.ToLower(string(k)) {
		case "property", "name":
			if key == "" {
				key = strings.ToLower(string(v))
			}
		case "content":
			content = strings.TrimSpace(string(v))
		}
		if !more {
			break
		}
	}
	if content == "" {
		return
	}

	switch key {
	case "og:title":
		og.Title = content
	case "og:description":
		og.Description = content
	case "og:image", "og:image:url", "og:image:secure_url":
		if og.Image.URL == "" {
			og.Image.URL = content
		}
	case "og:image:type":
		og.Image.Type = content
	case "description":
		fallback.Description = content
	case "twitter:image":
		if fallback.Image.URL == "" {
			fallback.Image.URL = content
		}
	}
}

func merge(og, fallback models.Preview, baseURL string) *models.Preview {
	result := og
	if result.Title == "" {
		result.Title = fallback.Title
	}
	if result.Description == "" {
		result.Description = fallback.Description
	}
	if result.Image.URL == "" {
		result.Image = fallback.Image
	}
	result.Image.URL = resolveURL(baseURL, result.Image.URL)
	return &result
}

func resolveURL(baseURL, ref string) string {
	if ref == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}
