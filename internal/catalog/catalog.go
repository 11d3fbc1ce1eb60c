// Package catalog fetches and decodes the remote browse catalog: the home
// document naming each row collection, and one set document per row with
// the tile artwork URLs.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

const (
	// DefaultHomeURL is the collection index document.
	DefaultHomeURL = "https://cd-static.bamgrid.com/dp-117731241344/home.json"
	// DefaultSetURLTemplate resolves a row's refId to its set document.
	DefaultSetURLTemplate = "https://cd-static.bamgrid.com/dp-117731241344/sets/%s.json"
)

// RowMetadata describes one row collection before its items are fetched.
type RowMetadata struct {
	Title string
	RefID string
}

// Client performs catalog fetches. The zero http.Client carries no request
// timeout: a stalled fetch leaves its placeholder on screen indefinitely.
type Client struct {
	http           *http.Client
	homeURL        string
	setURLTemplate string
}

// NewClient builds a Client for the given URL pair. Empty values fall back
// to the defaults.
func NewClient(homeURL, setURLTemplate string) *Client {
	if strings.TrimSpace(homeURL) == "" {
		homeURL = DefaultHomeURL
	}
	if strings.TrimSpace(setURLTemplate) == "" {
		setURLTemplate = DefaultSetURLTemplate
	}
	return &Client{
		http:           &http.Client{},
		homeURL:        homeURL,
		setURLTemplate: setURLTemplate,
	}
}

type homeDocument struct {
	Data struct {
		StandardCollection struct {
			Containers []struct {
				Set struct {
					RefID string `json:"refId"`
					Text  struct {
						Title struct {
							Full struct {
								Set struct {
									Default struct {
										Content string `json:"content"`
									} `json:"default"`
								} `json:"set"`
							} `json:"full"`
						} `json:"title"`
					} `json:"text"`
				} `json:"set"`
			} `json:"containers"`
		} `json:"StandardCollection"`
	} `json:"data"`
}

type setDocument struct {
	Data struct {
		CuratedSet struct {
			Items []struct {
				Image struct {
					Tile map[string]struct {
						Program struct {
							Default struct {
								URL string `json:"url"`
							} `json:"default"`
						} `json:"program"`
					} `json:"tile"`
				} `json:"image"`
			} `json:"items"`
		} `json:"CuratedSet"`
	} `json:"data"`
}

// FetchHome loads the collection index. Containers missing a title or a
// refId are skipped rather than treated as errors.
func (c *Client) FetchHome(ctx context.Context) ([]RowMetadata, error) {
	var doc homeDocument
	if err := c.getJSON(ctx, c.homeURL, &doc); err != nil {
		return nil, fmt.Errorf("fetch home: %w", err)
	}
	rows := make([]RowMetadata, 0, len(doc.Data.StandardCollection.Containers))
	for _, container := range doc.Data.StandardCollection.Containers {
		title := container.Set.Text.Title.Full.Set.Default.Content
		refID := container.Set.RefID
		if title == "" || refID == "" {
			continue
		}
		rows = append(rows, RowMetadata{Title: title, RefID: refID})
	}
	return rows, nil
}

// FetchSet loads one row's tile URLs. Items without a program tile URL are
// skipped. Tile variants are keyed by aspect ratio; the first variant with
// a usable URL wins, in sorted key order so results are deterministic.
func (c *Client) FetchSet(ctx context.Context, refID string) ([]string, error) {
	url := fmt.Sprintf(c.setURLTemplate, refID)
	var doc setDocument
	if err := c.getJSON(ctx, url, &doc); err != nil {
		return nil, fmt.Errorf("fetch set %s: %w", refID, err)
	}
	urls := make([]string, 0, len(doc.Data.CuratedSet.Items))
	for _, item := range doc.Data.CuratedSet.Items {
		keys := make([]string, 0, len(item.Image.Tile))
		for key := range item.Image.Tile {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if u := item.Image.Tile[key].Program.Default.URL; u != "" {
				urls = append(urls, u)
				break
			}
		}
	}
	return urls, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
