package credentials

import (
	"math/rand"
	"net/http"
	"net/url"
)

// DefaultProxyPool lists the rotating-gateway endpoints used when no static
// proxy is configured. Account credentials are injected into the selected
// endpoint to form an authenticated proxy URL.
var DefaultProxyPool = []string{
	"p.webshare.io:80",
	"p.webshare.io:1080",
	"p.webshare.io:3128",
	"p.webshare.io:8080",
	"p.webshare.io:9999",
}

// ProxyConfig controls how outbound proxying is resolved.
type ProxyConfig struct {
	StaticURL string
	Username  string
	Password  string
	Pool      []string
}

// Provisioner resolves the credential bundle applied to outbound requests
// toward the video platform: an optional cookie file plus an optional proxy.
type Provisioner struct {
	cookieFile string
	static     *url.URL
	username   string
	password   string
	pool       []string
}

// NewProvisioner builds a Provisioner. The cookie file must already have been
// resolved (ResolveCookieFile runs once at startup). An unparseable static
// proxy URL is treated as absent.
func NewProvisioner(cookieFile string, cfg ProxyConfig) *Provisioner {
	p := &Provisioner{
		cookieFile: cookieFile,
		username:   cfg.Username,
		password:   cfg.Password,
		pool:       cfg.Pool,
	}
	if len(p.pool) == 0 {
		p.pool = DefaultProxyPool
	}
	if cfg.StaticURL != "" {
		if u, err := url.Parse(cfg.StaticURL); err == nil && u.Host != "" {
			p.static = u
		}
	}
	return p
}

// CookieFile returns the sanitized scratch cookie path, or "" when none resolved.
func (p *Provisioner) CookieFile() string {
	return p.cookieFile
}

// ProxyURL resolves a single proxy endpoint: the static URL when configured,
// otherwise a random pool member with account credentials injected. Without
// account credentials, pool proxying is skipped entirely.
func (p *Provisioner) ProxyURL() *url.URL {
	if p.static != nil {
		return p.static
	}
	if p.username == "" || p.password == "" {
		return nil
	}
	return p.authenticated(p.pool[rand.Intn(len(p.pool))])
}

// DrawProxies returns up to n distinct authenticated proxy candidates from the
// pool, for the proxy-rotation acquisition mode. It returns nil when account
// credentials are absent.
func (p *Provisioner) DrawProxies(n int) []*url.URL {
	if p.username == "" || p.password == "" {
		return nil
	}
	if n > len(p.pool) {
		n = len(p.pool)
	}

	order := rand.Perm(len(p.pool))
	drawn := make([]*url.URL, 0, n)
	for _, idx := range order[:n] {
		drawn = append(drawn, p.authenticated(p.pool[idx]))
	}
	return drawn
}

func (p *Provisioner) authenticated(host string) *url.URL {
	return &url.URL{
		Scheme: "http",
		User:   url.UserPassword(p.username, p.password),
		Host:   host,
	}
}

// NewHTTPClient builds an HTTP client carrying the supplied proxy and cookie
// jar. Either may be nil.
func NewHTTPClient(proxy *url.URL, jar http.CookieJar) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}
	return &http.Client{
		Transport: transport,
		Jar:       jar,
	}
}
