package moodle

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestSession_CookiesPersistAcrossRequests(t *testing.T) {
	var sawCookie bool
	mux := http.NewServeMux()
	mux.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "MoodleSession", Value: "abc123", Path: "/"})
	})
	mux.HandleFunc("/check", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("MoodleSession"); err == nil && c.Value == "abc123" {
			sawCookie = true
		}
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	sess, err := NewSession(Options{})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer sess.Close()

	ctx := context.Background()
	resp, err := sess.Get(ctx, ts.URL+"/set")
	if err != nil {
		t.Fatalf("Get(/set) error: %v", err)
	}
	if _, err := ReadBody(resp); err != nil {
		t.Fatalf("ReadBody() error: %v", err)
	}

	resp, err = sess.Get(ctx, ts.URL+"/check")
	if err != nil {
		t.Fatalf("Get(/check) error: %v", err)
	}
	if _, err := ReadBody(resp); err != nil {
		t.Fatalf("ReadBody() error: %v", err)
	}

	if !sawCookie {
		t.Fatal("expected cookie from first response to be sent on second request")
	}

	u, _ := url.Parse(ts.URL)
	if len(sess.Cookies(u)) == 0 {
		t.Fatal("expected non-empty cookie jar after Set-Cookie response")
	}
}

func TestSession_PostFormFollowsRedirectAsGet(t *testing.T) {
	var landingMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/submit", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("submit method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostFormValue("idp"); got != "urn:example:idp" {
			t.Errorf("idp = %q, want %q", got, "urn:example:idp")
		}
		http.Redirect(w, r, "/landing", http.StatusFound)
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		landingMethod = r.Method
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	sess, err := NewSession(Options{})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer sess.Close()

	form := url.Values{"idp": {"urn:example:idp"}}
	resp, err := sess.PostForm(context.Background(), ts.URL+"/submit", form)
	if err != nil {
		t.Fatalf("PostForm() error: %v", err)
	}
	if _, err := ReadBody(resp); err != nil {
		t.Fatalf("ReadBody() error: %v", err)
	}

	if landingMethod != http.MethodGet {
		t.Errorf("redirect follow-up method = %s, want GET", landingMethod)
	}
	if got := resp.Request.URL.Path; got != "/landing" {
		t.Errorf("final URL path = %s, want /landing", got)
	}
}

func TestSession_TimeoutClassifiesAsNetError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer ts.Close()

	sess, err := NewSession(Options{Timeout: 30 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer sess.Close()

	_, err = sess.Get(context.Background(), ts.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Fatalf("expected net.Error timeout, got %v", err)
	}
}

func TestSession_FreshJarIsEmpty(t *testing.T) {
	sess, err := NewSession(Options{})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer sess.Close()

	u, _ := url.Parse("https://moodle.univ-ubs.fr/")
	if got := sess.Cookies(u); len(got) != 0 {
		t.Fatalf("fresh session cookies = %v, want none", got)
	}
}
