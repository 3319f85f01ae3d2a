package config

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DemoHost is the Odoo Cloud endpoint that provisions disposable demo
// instances.
const DemoHost = "https://demo.odoo.com"

// maxDemoRedirects bounds the provisioning redirect chain.
const maxDemoRedirects = 10

// demo.odoo.com only provisions for browser-looking requests.
const demoUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

// RequestDemo asks Odoo Cloud for a disposable demo instance. The server
// walks the caller through a redirect chain while the instance spins up,
// and answers 303 once the login URL carries the database name and
// credentials in its query string.
func RequestDemo(ctx context.Context, host string) (Credentials, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			// Redirects are followed by hand: the settled URL itself is
			// the payload.
			return http.ErrUseLastResponse
		},
	}

	current := host
	for i := 0; i < maxDemoRedirects; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodOptions, current, nil)
		if err != nil {
			return Credentials{}, fmt.Errorf("requesting demo instance: %w", err)
		}
		req.Header.Set("User-Agent", demoUserAgent)

		resp, err := client.Do(req)
		if err != nil {
			return Credentials{}, fmt.Errorf("requesting demo instance: %w", err)
		}
		resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusMultipleChoices, http.StatusMovedPermanently, http.StatusFound:
			next, err := resolveLocation(current, resp.Header.Get("Location"))
			if err != nil {
				return Credentials{}, err
			}
			current = next
		case http.StatusSeeOther:
			return parseDemoURL(current)
		default:
			return Credentials{}, fmt.Errorf("unexpected status %d from %s while provisioning demo instance",
				resp.StatusCode, current)
		}
	}
	return Credentials{}, fmt.Errorf("demo provisioning did not settle after %d redirects", maxDemoRedirects)
}

func resolveLocation(current, location string) (string, error) {
	if location == "" {
		return "", fmt.Errorf("demo redirect from %s carried no location", current)
	}
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("parsing demo URL %s: %w", current, err)
	}
	next, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parsing demo redirect location %s: %w", location, err)
	}
	return base.ResolveReference(next).String(), nil
}

// parseDemoURL extracts connection settings from the settled login URL,
// e.g. https://demo6.odoo.com/web/login?dbname=demo_xxx&user=admin&key=admin
func parseDemoURL(raw string) (Credentials, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Credentials{}, fmt.Errorf("parsing demo instance URL: %w", err)
	}

	q := u.Query()
	creds := Credentials{
		Instance: u.Scheme + "://" + u.Host,
		Database: q.Get("dbname"),
		Username: q.Get("user"),
		Password: Secret(q.Get("key")),
	}
	if creds.Database == "" || creds.Username == "" || !creds.Password.IsSet() {
		return Credentials{}, fmt.Errorf("demo instance URL %s://%s%s is missing credentials",
			u.Scheme, u.Host, u.Path)
	}
	return creds, nil
}
