package feeds

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Default timeout for HTTP requests, used when the config doesn't set one.
// A hung fetch would otherwise block the entire check cycle.
const defaultRequestTimeout = 20 * time.Second

// Checker fetches feeds and classifies them as changed or unchanged against the
// state stored in the catalog
type Checker struct {
	ctx    context.Context
	log    *log.Logger
	client *http.Client
}

// Init the object
func (c *Checker) Init(ctx context.Context) (err error) {
	c.ctx = ctx

	// Init the logger
	c.log = log.New(os.Stdout, "feeds: ", log.Ldate|log.Ltime|log.LUTC)

	// Init the HTTP client with a bounded per-fetch timeout
	timeout := defaultRequestTimeout
	if s := viper.GetInt("FeedRequestTimeout"); s > 0 {
		timeout = time.Duration(s) * time.Second
	}
	c.client = &http.Client{
		Timeout: timeout,
	}

	return nil
}
