package kyc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_AllServices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}

		w.Header().Set("content-type", "application/json")
		switch r.URL.Path {
		case "/face-match":
			if payload["icFrontUrl"] == "" || payload["selfieUrl"] == "" {
				t.Error("face-match payload missing urls")
			}
			_, _ = w.Write([]byte(`{"score":0.82}`))
		case "/liveness":
			if payload["selfieUrl"] == "" {
				t.Error("liveness payload missing selfie url")
			}
			_, _ = w.Write([]byte(`{"score":0.92}`))
		case "/ocr":
			if payload["frontUrl"] == "" {
				t.Error("ocr payload missing front url")
			}
			_, _ = w.Write([]byte(`{"name":"JOHN DOE","ic_number":"900101-14-1234","dob":"1990-01-01","address":"123, JALAN ABC, KUALA LUMPUR"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := NewClient(ts.URL, ts.URL, ts.URL, time.Second)

	score, err := c.FaceMatch(context.Background(), "https://cdn/ic_front.jpg", "https://cdn/selfie.jpg")
	if err != nil {
		t.Fatalf("FaceMatch error: %v", err)
	}
	if score != 0.82 {
		t.Fatalf("unexpected face score: %f", score)
	}

	score, err = c.Liveness(context.Background(), "https://cdn/selfie.jpg")
	if err != nil {
		t.Fatalf("Liveness error: %v", err)
	}
	if score != 0.92 {
		t.Fatalf("unexpected liveness score: %f", score)
	}

	fields, err := c.OCR(context.Background(), "https://cdn/ic_front.jpg", "")
	if err != nil {
		t.Fatalf("OCR error: %v", err)
	}
	if fields.ICNumber != "900101-14-1234" {
		t.Fatalf("unexpected ic number: %s", fields.ICNumber)
	}
}

func TestClient_Non200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, ts.URL, ts.URL, time.Second)

	if _, err := c.FaceMatch(context.Background(), "a", "b"); err == nil {
		t.Fatal("expected an error on a non-200 response")
	}
}
