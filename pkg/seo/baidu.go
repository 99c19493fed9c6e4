package seo

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anyonghua/onektips-server/pkg/logger"
)

// Pinger notifies a search engine about created or updated URLs.
// All pushes are fire-and-forget: failures are logged, never returned.
type Pinger interface {
	Push(url string)
	Update(url string)
}

// BaiduPinger submits URLs to the Baidu link push API
type BaiduPinger struct {
	pushEndpoint   string
	updateEndpoint string
	client         *http.Client
}

// NewBaiduPinger creates a pinger for the given site and token.
// Returns a no-op pinger when the token is empty.
func NewBaiduPinger(site, token string) Pinger {
	if token == "" {
		return noopPinger{}
	}
	return &BaiduPinger{
		pushEndpoint:   fmt.Sprintf("http://data.zz.baidu.com/urls?site=%s&token=%s", site, token),
		updateEndpoint: fmt.Sprintf("http://data.zz.baidu.com/update?site=%s&token=%s", site, token),
		client:         &http.Client{Timeout: 10 * time.Second},
	}
}

// Push submits a newly created URL
func (p *BaiduPinger) Push(url string) {
	go p.submit(p.pushEndpoint, url)
}

// Update submits a modified URL
func (p *BaiduPinger) Update(url string) {
	go p.submit(p.updateEndpoint, url)
}

func (p *BaiduPinger) submit(endpoint, url string) {
	resp, err := p.client.Post(endpoint, "text/plain", strings.NewReader(url))
	if err != nil {
		logger.GetLogger().Warn().Err(err).Str("url", url).Msg("seo ping failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.GetLogger().Warn().Int("status", resp.StatusCode).Str("url", url).Msg("seo ping rejected")
	}
}

type noopPinger struct{}

func (noopPinger) Push(string)   {}
func (noopPinger) Update(string) {}
