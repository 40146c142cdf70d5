package credentials

import "testing"

func TestProvisionerStaticProxy(t *testing.T) {
	p := NewProvisioner("", ProxyConfig{StaticURL: "http://proxy.example:3128"})

	proxy := p.ProxyURL()
	if proxy == nil {
		t.Fatal("expected static proxy")
	}
	if proxy.Host != "proxy.example:3128" {
		t.Fatalf("unexpected proxy host %q", proxy.Host)
	}
}

func TestProvisionerPoolRequiresCredentials(t *testing.T) {
	p := NewProvisioner("", ProxyConfig{Pool: []string{"a:80", "b:80"}})

	if proxy := p.ProxyURL(); proxy != nil {
		t.Fatalf("expected no proxy without account credentials, got %v", proxy)
	}
	if drawn := p.DrawProxies(3); drawn != nil {
		t.Fatalf("expected no rotation candidates without credentials, got %v", drawn)
	}
}

func TestProvisionerPoolInjectsCredentials(t *testing.T) {
	p := NewProvisioner("", ProxyConfig{
		Username: "acct",
		Password: "s3cret",
		Pool:     []string{"gateway.example:8080"},
	})

	proxy := p.ProxyURL()
	if proxy == nil {
		t.Fatal("expected a pool proxy")
	}
	if proxy.User == nil || proxy.User.Username() != "acct" {
		t.Fatalf("credentials not injected: %v", proxy)
	}
	if pw, _ := proxy.User.Password(); pw != "s3cret" {
		t.Fatalf("password not injected: %v", proxy)
	}
}

func TestDrawProxiesDistinctAndCapped(t *testing.T) {
	pool := []string{"a:80", "b:80", "c:80"}
	p := NewProvisioner("", ProxyConfig{Username: "u", Password: "p", Pool: pool})

	drawn := p.DrawProxies(5)
	if len(drawn) != len(pool) {
		t.Fatalf("expected draw capped at pool size %d, got %d", len(pool), len(drawn))
	}

	seen := make(map[string]bool)
	for _, proxy := range drawn {
		if seen[proxy.Host] {
			t.Fatalf("duplicate candidate %q", proxy.Host)
		}
		seen[proxy.Host] = true
	}
}

func TestNewHTTPClientWithoutProxy(t *testing.T) {
	client := NewHTTPClient(nil, nil)
	if client == nil || client.Transport == nil {
		t.Fatal("expected a client with its own transport")
	}
}
