// Package seed loads the initial user and ad catalog into a store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

//go:embed default.yaml
var defaultData []byte

type Data struct {
	Users      []model.User `yaml:"users"`
	Ads        []model.Ad   `yaml:"ads"`
	BlockedAds []string     `yaml:"blocked_ads"`
}

// Writer is the subset of the store the seeder needs.
type Writer interface {
	UpsertUser(ctx context.Context, u model.User) error
	UpsertAd(ctx context.Context, ad model.Ad) error
	AddGlobalBlocked(ctx context.Context, adTitle string) error
}

// Load reads seed data from path, or the embedded default when path is empty.
func Load(path string) (*Data, error) {
	if path == "" {
		return Parse(defaultData)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	seen := make(map[string]bool, len(d.Users))
	for i := range d.Users {
		// Stored ids must be reachable through the HTTP routes, which trim.
		id := strings.TrimSpace(d.Users[i].ID)
		if msg := model.CheckUserID(id); msg != "" {
			return nil, fmt.Errorf("seed user %d: %s", i, msg)
		}
		if seen[id] {
			return nil, fmt.Errorf("seed user %q: duplicate id", id)
		}
		seen[id] = true
		d.Users[i].ID = id
	}
	titles := make(map[string]bool, len(d.Ads))
	for i, ad := range d.Ads {
		if strings.TrimSpace(ad.Title) == "" {
			return nil, fmt.Errorf("seed ad %d: missing title", i)
		}
		if titles[ad.Title] {
			return nil, fmt.Errorf("seed ad %q: duplicate title", ad.Title)
		}
		titles[ad.Title] = true
	}
	return &d, nil
}

// Apply writes every record. Upserts make it safe to run on each start.
func (d *Data) Apply(ctx context.Context, w Writer) error {
	for _, u := range d.Users {
		if err := w.UpsertUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %q: %w", u.ID, err)
		}
	}
	for _, ad := range d.Ads {
		if err := w.UpsertAd(ctx, ad); err != nil {
			return fmt.Errorf("seed ad %q: %w", ad.Title, err)
		}
	}
	for _, title := range d.BlockedAds {
		if err := w.AddGlobalBlocked(ctx, title); err != nil {
			return fmt.Errorf("seed blocked ad %q: %w", title, err)
		}
	}
	return nil
}
