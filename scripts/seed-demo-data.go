//go:build ignore
// +build ignore

// seed-demo-data seeds six months of plausible invoices and transactions
// into a running server so the dashboard has something to chart.
//
// Usage:
//   go run scripts/seed-demo-data.go            # targets http://localhost:8112
//   API_URL=http://host:port go run scripts/seed-demo-data.go

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"
)

var clients = []struct {
	name     string
	rate     float64
	lateDays int // typical payment delay past due, negative means early
}{
	{"Acme Corp", 150, -2},
	{"Globex LLC", 120, 1},
	{"Initech", 95, 12},
	{"Umbrella Partners", 200, 25},
	{"Stark Industries", 175, -5},
}

var expenses = []struct {
	description string
	category    string
	amount      float64
}{
	{"Office rent", "Rent", 1800},
	{"Cloud hosting", "Software", 240},
	{"Accounting software", "Software", 49},
	{"Coworking day passes", "Office Supplies", 120},
	{"Client lunch", "Meals", 85},
}

func main() {
	rng := rand.New(rand.NewSource(42)) // deterministic so reruns look the same

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8112"
	}

	now := time.Now().UTC()
	start := now.AddDate(0, -6, 0)

	invoiceCount := 0
	for month := 0; month < 6; month++ {
		monthStart := start.AddDate(0, month, 0)
		for _, cl := range clients {
			// Most clients bill every month, some skip one.
			if rng.Float64() < 0.15 {
				continue
			}
			issue := monthStart.AddDate(0, 0, rng.Intn(10))
			due := issue.AddDate(0, 0, 14)
			hours := 8 + rng.Intn(40)

			body := map[string]interface{}{
				"client_name":  cl.name,
				"client_email": fmt.Sprintf("billing@%s.example.com", slug(cl.name)),
				"issue_date":   issue.Format("2006-01-02"),
				"due_date":     due.Format("2006-01-02"),
				"tax_rate":     10,
				"items": []map[string]interface{}{
					{"description": "Consulting hours", "quantity": hours, "unit_price": cl.rate},
				},
			}

			payment := due.AddDate(0, 0, cl.lateDays+rng.Intn(5))
			if payment.Before(now) {
				body["status"] = "Paid"
				body["payment_date"] = payment.Format("2006-01-02")
			} else if now.After(due) {
				body["status"] = "Overdue"
			}

			post(apiURL+"/api/v1/invoices", body)
			invoiceCount++
		}
	}
	log.Printf("seeded %d invoices", invoiceCount)

	txCount := 0
	for month := 0; month < 6; month++ {
		monthStart := start.AddDate(0, month, 0)
		for _, e := range expenses {
			jitter := 1 + (rng.Float64()-0.5)*0.2
			post(apiURL+"/api/v1/transactions", map[string]interface{}{
				"date":        monthStart.AddDate(0, 0, rng.Intn(25)).Format("2006-01-02"),
				"description": e.description,
				"category":    e.category,
				"account":     "Business Checking",
				"type":        "Debit",
				"amount":      float64(int(e.amount*jitter*100)) / 100,
			})
			txCount++
		}
	}
	log.Printf("seeded %d transactions", txCount)
}

func post(url string, body map[string]interface{}) {
	data, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("encode request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		log.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(resp.Body)
		log.Fatalf("POST %s: %d %s", url, resp.StatusCode, msg)
	}
}

func slug(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		case c >= 'a' && c <= 'z':
			out = append(out, c)
		}
	}
	return string(out)
}
