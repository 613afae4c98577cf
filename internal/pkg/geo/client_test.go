package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDrivingDistance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/route/v1/driving/") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("overview") != "false" {
			t.Errorf("overview = %q, want false", r.URL.Query().Get("overview"))
		}
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":4213.7}]}`)
	}))
	defer srv.Close()

	client := NewOSRMClient(srv.URL, 2*time.Second)
	meters, err := client.DrivingDistance(context.Background(),
		Point{Latitude: -34.9011, Longitude: -56.1645},
		Point{Latitude: -34.8836, Longitude: -56.1819})
	if err != nil {
		t.Fatalf("DrivingDistance() error = %v", err)
	}
	if meters != 4213.7 {
		t.Errorf("DrivingDistance() = %f, want 4213.7", meters)
	}
}

func TestDrivingDistanceNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"NoRoute","routes":[]}`)
	}))
	defer srv.Close()

	client := NewOSRMClient(srv.URL, 2*time.Second)
	_, err := client.DrivingDistance(context.Background(), Point{}, Point{})
	if !errors.Is(err, ErrNoRoute) {
		t.Errorf("DrivingDistance() error = %v, want ErrNoRoute", err)
	}
}

func TestDrivingDistanceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOSRMClient(srv.URL, 2*time.Second)
	if _, err := client.DrivingDistance(context.Background(), Point{}, Point{}); err == nil {
		t.Error("DrivingDistance() must fail on a 5xx response")
	}
}

func TestDrivingDistanceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer srv.Close()

	client := NewOSRMClient(srv.URL, 2*time.Second)
	if _, err := client.DrivingDistance(context.Background(), Point{}, Point{}); err == nil {
		t.Error("DrivingDistance() must fail on a malformed body")
	}
}
