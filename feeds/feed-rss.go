package feeds

import (
	"errors"
	"net/http"
	"time"

	"github.com/Songmu/go-httpdate"
	"github.com/mmcdole/gofeed"
	"github.com/spf13/viper"
)

// FetchInfo carries the conditional-fetch hints found in a response.
// A feed record keeps these opportunistically; they are not part of the change
// decision because most feed servers never send them.
type FetchInfo struct {
	ETag         string
	LastModified time.Time
}

// RequestFeed requests a feed and parses it with gofeed
// We're using this rather than gofeed.ParseURL to have more control on the request.
// The stored hints are never sent as conditional headers: the change decision needs
// the full entry list from every fetch, so a 304 short-circuit would be useless here.
func (c *Checker) RequestFeed(url string) (posts *gofeed.Feed, info FetchInfo, err error) {
	if url == "" {
		return nil, info, errors.New("empty feed URL")
	}

	// Create the request
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, info, err
	}
	req = req.WithContext(c.ctx)
	req.Header.Set("User-Agent", viper.GetString("UserAgent"))

	// Send the request and read the data
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, info, err
	}
	defer resp.Body.Close()

	// Status code
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, info, gofeed.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	// Get the ETag and Last-Modified headers
	info.ETag = resp.Header.Get("ETag")
	lastModified := resp.Header.Get("Last-Modified")
	if lastModified != "" {
		d, err := httpdate.Str2Time(lastModified, nil)
		if err == nil && !d.IsZero() {
			info.LastModified = d
		}
	}

	// Parse the feed
	fp := gofeed.NewParser()
	posts, err = fp.Parse(resp.Body)
	if err != nil {
		return nil, info, err
	}

	c.log.Printf("Found %d posts in feed %s\n", len(posts.Items), url)

	return posts, info, nil
}
