package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketlens/internal/client/manifold"
	"marketlens/internal/client/polymarket"
	"marketlens/internal/models"
)

func polymarketServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
}

func TestFetchAll_NormalizesBothVenues(t *testing.T) {
	polySrv := polymarketServer(t, `[
		{"id":"p1","question":"Will it happen?","slug":"will-it-happen",
		 "lastTradePrice":"0.42","liquidityClob":"8000","volumeClob":"3000"},
		{"id":"p2","question":"No price here","slug":"no-price"},
		{"id":"p3","question":"Dead market","slug":"dead","lastTradePrice":"0.10"}
	]`)
	defer polySrv.Close()
	maniSrv := polymarketServer(t, `[
		{"id":"m1","question":"Same thing elsewhere?","probability":0.55,
		 "totalLiquidity":900,"volume":120,"url":"https://manifold.markets/m1"}
	]`)
	defer maniSrv.Close()

	f := &Fetcher{
		Polymarket: polymarket.NewClient(polySrv.Client(), polySrv.URL),
		Manifold:   manifold.NewClient(maniSrv.Client(), maniSrv.URL),
	}
	listings := f.FetchAll(context.Background())
	if len(listings) != 2 {
		t.Fatalf("listings=%d want=2 (unpriced and dead markets skipped)", len(listings))
	}

	poly := listings[0]
	if poly.Source != models.SourcePolymarket {
		t.Fatalf("source=%q want=%q", poly.Source, models.SourcePolymarket)
	}
	if poly.MarketProb != 0.42 {
		t.Fatalf("marketProb=%v want=0.42", poly.MarketProb)
	}
	if poly.Liquidity != 8000 || poly.Volume != 3000 {
		t.Fatalf("liquidity/volume=%v/%v want=8000/3000", poly.Liquidity, poly.Volume)
	}
	if poly.URL != "https://polymarket.com/event/will-it-happen" {
		t.Fatalf("url=%q", poly.URL)
	}

	mani := listings[1]
	if mani.Source != models.SourceManifold {
		t.Fatalf("source=%q want=%q", mani.Source, models.SourceManifold)
	}
	if mani.MarketProb != 0.55 || mani.Liquidity != 900 {
		t.Fatalf("marketProb/liquidity=%v/%v want=0.55/900", mani.MarketProb, mani.Liquidity)
	}
	if mani.URL != "https://manifold.markets/m1" {
		t.Fatalf("url=%q", mani.URL)
	}
}

func TestFetchAll_VenueFailureDegrades(t *testing.T) {
	polySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer polySrv.Close()
	maniSrv := polymarketServer(t, `[
		{"id":"m1","question":"Still works?","probability":0.50,
		 "totalLiquidity":100,"volume":10,"url":"https://manifold.markets/m1"}
	]`)
	defer maniSrv.Close()

	f := &Fetcher{
		Polymarket: polymarket.NewClient(polySrv.Client(), polySrv.URL),
		Manifold:   manifold.NewClient(maniSrv.Client(), maniSrv.URL),
	}
	listings := f.FetchAll(context.Background())
	if len(listings) != 1 {
		t.Fatalf("listings=%d want=1 (healthy venue only)", len(listings))
	}
	if listings[0].Source != models.SourceManifold {
		t.Fatalf("source=%q want=%q", listings[0].Source, models.SourceManifold)
	}
}

func TestFetchAll_NilClients(t *testing.T) {
	f := &Fetcher{}
	if got := f.FetchAll(context.Background()); len(got) != 0 {
		t.Fatalf("listings=%d want=0", len(got))
	}
}

func TestFetchPolymarket_VolumeFallback(t *testing.T) {
	polySrv := polymarketServer(t, `[
		{"id":"p1","question":"Fallback fields","slug":"fb",
		 "lastTradePrice":0.33,"liquidity":"4000","volume":"250"}
	]`)
	defer polySrv.Close()

	f := &Fetcher{Polymarket: polymarket.NewClient(polySrv.Client(), polySrv.URL)}
	listings := f.FetchAll(context.Background())
	if len(listings) != 1 {
		t.Fatalf("listings=%d want=1", len(listings))
	}
	if listings[0].Liquidity != 4000 || listings[0].Volume != 250 {
		t.Fatalf("liquidity/volume=%v/%v want=4000/250 (fallback fields)",
			listings[0].Liquidity, listings[0].Volume)
	}
}
