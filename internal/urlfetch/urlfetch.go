// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

// Package urlfetch fetches remote markdown for the `check --url` command
// path, guarding against server-side request forgery: only plain http(s)
// URLs pointing at a public host are ever requested.
package urlfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
)

// MaxResponseSize caps the amount of body read from a fetched URL, mirroring
// the markdown extractor's own input cap so a hostile server cannot OOM the
// process with an unbounded response.
const MaxResponseSize = 10 * 1024 * 1024

// ErrBlockedHost is returned when a URL targets a disallowed host or IP range.
var ErrBlockedHost = errors.New("url targets a blocked host")

var blockedNets = []*net.IPNet{
	mustCIDR("127.0.0.0/8"),    // loopback
	mustCIDR("10.0.0.0/8"),     // RFC1918
	mustCIDR("172.16.0.0/12"),  // RFC1918
	mustCIDR("192.168.0.0/16"), // RFC1918
	mustCIDR("169.254.0.0/16"), // link-local
	mustCIDR("::1/128"),        // loopback (v6)
}

func mustCIDR(s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Validate checks rawURL against the scheme and host restrictions: only
// http/https is accepted, and the host may not resolve to loopback,
// RFC1918, link-local, or 0.0.0.0. It does not perform the request itself
// so callers can validate before committing to a fetch.
func Validate(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q not allowed", ErrBlockedHost, parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("url has no host")
	}
	if host == "localhost" || host == "0.0.0.0" {
		return fmt.Errorf("%w: %s", ErrBlockedHost, host)
	}

	// A bare hostname (not a literal IP) is allowed through here; the
	// actual connection is still checked against blockedNets below via
	// the resolved address, closing the DNS-rebinding gap a hostname-only
	// check would leave open.
	if ip := net.ParseIP(host); ip != nil {
		if err := checkIP(ip); err != nil {
			return err
		}
	}
	return nil
}

func checkIP(ip net.IP) error {
	for _, n := range blockedNets {
		if n.Contains(ip) {
			return fmt.Errorf("%w: %s", ErrBlockedHost, ip)
		}
	}
	return nil
}

// Fetch validates rawURL, then issues a GET request with a dialer that
// re-validates every resolved address before connecting (closing the
// hostname-resolves-to-a-private-IP gap), and returns up to
// MaxResponseSize bytes of the response body.
func Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := Validate(rawURL); err != nil {
		return nil, err
	}

	client := &http.Client{
		Transport: &http.Transport{
			DialContext: guardedDialContext,
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching url: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

func guardedDialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	resolved, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("no addresses found for %s", host)
	}
	for _, a := range resolved {
		if err := checkIP(a.IP); err != nil {
			return nil, err
		}
	}
	var d net.Dialer
	return d.DialContext(ctx, network, net.JoinHostPort(resolved[0].IP.String(), port))
}
