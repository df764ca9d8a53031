// submit_batch.go reads form submissions from a CSV file and posts each one to
// the CardioRisk API.
//
// The header row names the columns: iadl_score, gender, self_rated_health,
// hearing, age, plus one column per yes/no indicator using its form name
// (e.g. "Hypertension"). Rows may carry an optional leading "id" column which
// is echoed in the output.
//
// Usage:
//
//	go run scripts/submit_batch.go -csv patients.csv -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type submission struct {
	IADLScore       string            `json:"iadl_score"`
	Gender          string            `json:"gender"`
	Indicators      map[string]string `json:"indicators"`
	SelfRatedHealth string            `json:"self_rated_health"`
	Hearing         string            `json:"hearing"`
	Age             *float64          `json:"age"`
}

type assessmentResult struct {
	ID             string  `json:"id"`
	ProbabilityPct float64 `json:"probability_pct"`
	TierLabel      string  `json:"tier_label"`
	Error          string  `json:"error"`
	Field          string  `json:"field"`
}

var indicatorColumns = []string{
	"Residence", "Hypertension", "Dyslipidemia", "Digestive disease",
	"Vigorous activity", "Moderate activity", "Disability status", "Tap water access",
}

type row struct {
	label string
	body  submission
}

func main() {
	csvPath := flag.String("csv", "patients.csv", "path to CSV of submissions")
	apiURL := flag.String("api", "http://localhost:8700", "CardioRisk API base URL")
	clientID := flag.String("client", "batch", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print parsed submissions without posting")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := parseRows(f)
	if err != nil {
		log.Fatalf("parse csv: %v", err)
	}
	log.Printf("parsed %d submissions from %s", len(rows), *csvPath)

	if *dryRun {
		for i, r := range rows {
			body, _ := json.Marshal(r.body)
			fmt.Printf("[%d] %s %s\n", i+1, r.label, body)
		}
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	scored, rejected := 0, 0
	for _, r := range rows {
		res, status, err := submit(client, *apiURL, *clientID, r.body)
		if err != nil {
			log.Printf("skip %s: %v", r.label, err)
			rejected++
			continue
		}
		if status != http.StatusOK {
			log.Printf("reject %s: status %d: %s (field %q)", r.label, status, res.Error, res.Field)
			rejected++
			continue
		}
		fmt.Printf("%s\t%s\t%.2f%%\t%s\n", r.label, res.TierLabel, res.ProbabilityPct, res.ID)
		scored++
	}

	log.Printf("done: %d scored, %d rejected", scored, rejected)
}

func parseRows(r io.Reader) ([]row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"iadl_score", "gender", "self_rated_health", "hearing", "age"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var rows []row
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		get := func(name string) string {
			if i, ok := col[name]; ok && i < len(rec) {
				return rec[i]
			}
			return ""
		}

		s := submission{
			IADLScore:       get("iadl_score"),
			Gender:          get("gender"),
			Indicators:      make(map[string]string, len(indicatorColumns)),
			SelfRatedHealth: get("self_rated_health"),
			Hearing:         get("hearing"),
		}
		for _, name := range indicatorColumns {
			if _, ok := col[name]; ok {
				s.Indicators[name] = get(name)
			}
		}
		if raw := strings.TrimSpace(get("age")); raw != "" {
			age, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid age %q", line, raw)
			}
			s.Age = &age
		}

		label := get("id")
		if label == "" {
			label = fmt.Sprintf("row-%d", line)
		}
		rows = append(rows, row{label: label, body: s})
	}
	return rows, nil
}

func submit(client *http.Client, apiURL, clientID string, s submission) (*assessmentResult, int, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequest("POST", apiURL+"/api/v1/assessments", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", clientID)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var res assessmentResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return &res, resp.StatusCode, nil
}
