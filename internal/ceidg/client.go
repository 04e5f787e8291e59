// Package ceidg looks up business registrations in the CEIDG registry
// (Centralna Ewidencja i Informacja o Działalności Gospodarczej).
package ceidg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jkleczar/wypadek/internal/report"
)

// Firm is the subset of a CEIDG entry the report needs.
type Firm struct {
	Name           string
	Address        string
	PKDCode        string
	PKDDescription string
}

// Client talks to the CEIDG v2 API. A miss is not an error: the wizard
// falls back to manual entry when nothing comes back.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// New builds a client. baseURL is e.g. https://dane.biznes.gov.pl/api/ceidg/v2.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type firmPayload struct {
	Firms []struct {
		Name    string `json:"nazwa"`
		Address struct {
			Street   string `json:"ulica"`
			Building string `json:"budynek"`
			City     string `json:"miasto"`
			PostCode string `json:"kod"`
		} `json:"adresDzialalnosci"`
		MainPKD struct {
			Code        string `json:"kod"`
			Description string `json:"nazwa"`
		} `json:"pkdGlowny"`
	} `json:"firmy"`
}

// ByNIP finds the firm registered under a NIP. Returns nil when the
// registry has no match.
func (c *Client) ByNIP(ctx context.Context, nip string) (*Firm, error) {
	return c.lookup(ctx, url.Values{"nip": {nip}})
}

// ByREGON finds the firm registered under a REGON.
func (c *Client) ByREGON(ctx context.Context, regon string) (*Firm, error) {
	return c.lookup(ctx, url.Values{"regon": {regon}})
}

func (c *Client) lookup(ctx context.Context, query url.Values) (*Firm, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/firmy?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build ceidg request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query ceidg: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ceidg returned status %d", resp.StatusCode)
	}

	var payload firmPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode ceidg response: %w", err)
	}
	if len(payload.Firms) == 0 {
		return nil, nil
	}

	f := payload.Firms[0]
	addr := strings.TrimSpace(f.Address.Street + " " + f.Address.Building)
	if f.Address.PostCode != "" || f.Address.City != "" {
		addr = strings.TrimSpace(addr + ", " + strings.TrimSpace(f.Address.PostCode+" "+f.Address.City))
	}
	return &Firm{
		Name:           f.Name,
		Address:        addr,
		PKDCode:        f.MainPKD.Code,
		PKDDescription: f.MainPKD.Description,
	}, nil
}

// BusinessByNIP adapts the lookup to the partial-update shape the chat
// and form flows merge from. A registry miss yields an empty partial.
func (c *Client) BusinessByNIP(ctx context.Context, nip string) (report.Partial, error) {
	firm, err := c.ByNIP(ctx, nip)
	if err != nil {
		return nil, err
	}
	if firm == nil {
		log.Debug().Str("nip", nip).Msg("ceidg has no entry")
		return nil, nil
	}
	return report.Partial{
		"businessName":    firm.Name,
		"businessAddress": firm.Address,
		"pkdCode":         firm.PKDCode,
		"pkdDescription":  firm.PKDDescription,
	}, nil
}
