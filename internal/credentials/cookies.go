package credentials

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
)

// CookieSources lists where a Netscape-format cookie file may come from,
// checked in priority order: a mounted secret, a file colocated with the
// service, then a base64-encoded environment payload.
type CookieSources struct {
	SecretPath    string
	LocalPath     string
	Base64Payload string
}

// ResolveCookieFile locates a cookie file, sanitizes it into a scratch copy,
// and returns the scratch path. It returns "" when no source yields a usable
// file; every failure degrades to that rather than aborting startup.
func ResolveCookieFile(sources CookieSources, logger *slog.Logger) string {
	if logger == nil {
		logger = slog.Default()
	}

	for _, path := range []string{sources.SecretPath, sources.LocalPath} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("read cookie file", "path", path, "error", err)
			}
			continue
		}
		scratch, err := writeSanitized(data, logger)
		if err != nil {
			logger.Warn("sanitize cookie file", "path", path, "error", err)
			continue
		}
		logger.Info("cookie file resolved", "source", path, "scratch", scratch)
		return scratch
	}

	if sources.Base64Payload != "" {
		data, err := base64.StdEncoding.DecodeString(sources.Base64Payload)
		if err != nil {
			logger.Warn("decode cookie payload", "error", err)
			return ""
		}
		scratch, err := writeSanitized(data, logger)
		if err != nil {
			logger.Warn("sanitize cookie payload", "error", err)
			return ""
		}
		logger.Info("cookie file materialized from environment", "scratch", scratch)
		return scratch
	}

	return ""
}

func writeSanitized(data []byte, logger *slog.Logger) (string, error) {
	sanitized := sanitizeCookieLines(data, logger)

	f, err := os.CreateTemp("", "vidbrief-cookies-*.txt")
	if err != nil {
		return "", fmt.Errorf("create scratch cookie file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(sanitized); err != nil {
		return "", fmt.Errorf("write scratch cookie file: %w", err)
	}
	return f.Name(), nil
}

// sanitizeCookieLines drops malformed Netscape cookie lines. A valid line is
// blank, a comment, or has at least 7 tab-separated fields with a non-empty
// name field. Cookies with an empty value field are kept but flagged.
func sanitizeCookieLines(data []byte, logger *slog.Logger) []byte {
	var out bytes.Buffer
	dropped := 0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			out.WriteString(line)
			out.WriteByte('\n')
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 7 || fields[5] == "" {
			dropped++
			continue
		}
		if fields[6] == "" {
			logger.Warn("cookie has empty value", "name", fields[5], "domain", fields[0])
		}

		out.WriteString(line)
		out.WriteByte('\n')
	}

	if dropped > 0 {
		logger.Warn("dropped malformed cookie lines", "count", dropped)
	}
	return out.Bytes()
}

// NewCookieJar loads a sanitized Netscape cookie file into an http.CookieJar
// usable by the captions-API HTTP client. A missing or empty path yields a nil
// jar, which http.Client treats as no cookies.
func NewCookieJar(path string) (http.CookieJar, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("build cookie jar: %w", err)
	}

	byDomain := make(map[string][]*http.Cookie)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 7 || fields[5] == "" {
			continue
		}

		domain := strings.TrimPrefix(fields[0], ".")
		byDomain[domain] = append(byDomain[domain], &http.Cookie{
			Name:   fields[5],
			Value:  fields[6],
			Path:   fields[2],
			Domain: fields[0],
			Secure: strings.EqualFold(fields[3], "TRUE"),
		})
	}

	for domain, cookies := range byDomain {
		jar.SetCookies(&url.URL{Scheme: "https", Host: domain}, cookies)
	}
	return jar, nil
}
