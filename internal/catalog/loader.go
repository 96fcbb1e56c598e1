package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/logger"
	"github.com/Fukolomka/Sitea/internal/repository"
	"github.com/Fukolomka/Sitea/internal/validation"
)

// Sentinel errors for the catalog loader
var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config represents the JSON catalog file
type Config struct {
	Version     string    `json:"version"`
	Description string    `json:"description"`
	Items       []ItemDef `json:"items"`
	Cases       []CaseDef `json:"cases"`
}

// ItemDef represents a single item definition in the JSON
type ItemDef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Rarity      string `json:"rarity"`
	Type        string `json:"type"`
	Price       string `json:"price"`
	Disabled    bool   `json:"disabled,omitempty"`
}

// CaseDef represents a case and its weighted entries
type CaseDef struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Price       string     `json:"price"`
	Disabled    bool       `json:"disabled,omitempty"`
	Entries     []EntryDef `json:"entries"`
}

// EntryDef references an item by name with a relative drop weight
type EntryDef struct {
	Item   string  `json:"item"`
	Weight float64 `json:"weight"`
}

// Loader handles loading, validating and syncing the catalog file
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
	SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog) (*SyncResult, error)
}

// SyncResult contains the result of syncing the catalog to the database
type SyncResult struct {
	ItemsUpserted int
	CasesUpserted int
}

type loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &loader{schemaValidator: validation.NewSchemaValidator()}
}

// Load reads, schema-checks and parses a catalog file
func (l *loader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	if err := l.schemaValidator.ValidateBytes(data, SchemaPath); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}
	return &config, nil
}

// Validate checks cross-references the schema cannot express
func (l *loader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if config.Version != SupportedVersion {
		return fmt.Errorf(ErrFmtUnsupportedVer, ErrInvalidConfig, config.Version)
	}
	if len(config.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}
	if len(config.Cases) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoCasesDefined)
	}

	items := make(map[string]bool, len(config.Items))
	for i := range config.Items {
		if err := validateItemDef(i, &config.Items[i], items); err != nil {
			return err
		}
	}

	cases := make(map[string]bool, len(config.Cases))
	for i := range config.Cases {
		if err := validateCaseDef(i, &config.Cases[i], cases, items); err != nil {
			return err
		}
	}
	return nil
}

func validateItemDef(index int, def *ItemDef, seen map[string]bool) error {
	if def.Name == "" {
		return fmt.Errorf(ErrFmtItemAtIndexEmpty, ErrInvalidConfig, index)
	}
	if seen[def.Name] {
		return fmt.Errorf(ErrFmtDuplicateName, ErrDuplicateName, "item", def.Name)
	}
	seen[def.Name] = true

	if _, err := parsePrice(def.Price); err != nil {
		return fmt.Errorf(ErrFmtBadPrice, ErrInvalidConfig, "item", def.Name, def.Price)
	}
	if _, err := domain.ParseRarity(def.Rarity); err != nil {
		return fmt.Errorf(ErrFmtBadRarity, ErrInvalidConfig, def.Name, err)
	}
	if _, err := domain.ParseItemType(def.Type); err != nil {
		return fmt.Errorf(ErrFmtBadType, ErrInvalidConfig, def.Name, err)
	}
	return nil
}

func validateCaseDef(index int, def *CaseDef, seen, items map[string]bool) error {
	if def.Name == "" {
		return fmt.Errorf(ErrFmtCaseAtIndexEmpty, ErrInvalidConfig, index)
	}
	if seen[def.Name] {
		return fmt.Errorf(ErrFmtDuplicateName, ErrDuplicateName, "case", def.Name)
	}
	seen[def.Name] = true

	if _, err := parsePrice(def.Price); err != nil {
		return fmt.Errorf(ErrFmtBadPrice, ErrInvalidConfig, "case", def.Name, def.Price)
	}
	if len(def.Entries) == 0 {
		return fmt.Errorf(ErrFmtCaseNoEntries, ErrInvalidConfig, def.Name)
	}

	listed := make(map[string]bool, len(def.Entries))
	var total float64
	for _, e := range def.Entries {
		if !items[e.Item] {
			return fmt.Errorf(ErrFmtCaseUnknownItem, ErrInvalidConfig, def.Name, e.Item)
		}
		if listed[e.Item] {
			return fmt.Errorf(ErrFmtCaseDuplicateItem, ErrInvalidConfig, def.Name, e.Item)
		}
		listed[e.Item] = true
		if e.Weight < 0 {
			return fmt.Errorf(ErrFmtCaseNegWeight, ErrInvalidConfig, def.Name, e.Item)
		}
		total += e.Weight
	}
	if total <= 0 {
		return fmt.Errorf(ErrFmtCaseNoPositive, ErrInvalidConfig, def.Name)
	}
	return nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	return d.Round(2), nil
}

// SyncToDatabase upserts items and cases by name. Running it twice with the
// same file leaves the catalog unchanged.
func (l *loader) SyncToDatabase(ctx context.Context, config *Config, repo repository.Catalog) (*SyncResult, error) {
	log := logger.FromContext(ctx)
	if err := l.Validate(config); err != nil {
		return nil, err
	}

	result := &SyncResult{}
	byName := make(map[string]domain.Item, len(config.Items))
	for _, def := range config.Items {
		item := toItem(def)
		if err := repo.UpsertItem(ctx, &item); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertItemFailed, def.Name, err)
		}
		byName[def.Name] = item
		result.ItemsUpserted++
		log.Debug(LogMsgUpsertedItem, "name", item.Name, "id", item.ID)
	}

	for _, def := range config.Cases {
		c := toCase(def, byName)
		if err := repo.UpsertCase(ctx, &c); err != nil {
			return nil, fmt.Errorf(ErrMsgUpsertCaseFailed, def.Name, err)
		}
		result.CasesUpserted++
		log.Debug(LogMsgUpsertedCase, "name", c.Name, "id", c.ID, "entries", len(c.Items))
	}

	log.Info(LogMsgSyncCompleted, "items", result.ItemsUpserted, "cases", result.CasesUpserted)
	return result, nil
}

// toItem assumes def passed Validate.
func toItem(def ItemDef) domain.Item {
	price, _ := parsePrice(def.Price)
	rarity, _ := domain.ParseRarity(def.Rarity)
	typ, _ := domain.ParseItemType(def.Type)
	return domain.Item{
		Name:        def.Name,
		Description: def.Description,
		Image:       def.Image,
		Rarity:      rarity,
		Type:        typ,
		Price:       price,
		IsActive:    !def.Disabled,
	}
}

func toCase(def CaseDef, items map[string]domain.Item) domain.Case {
	price, _ := parsePrice(def.Price)
	c := domain.Case{
		Name:        def.Name,
		Description: def.Description,
		Image:       def.Image,
		Price:       price,
		IsActive:    !def.Disabled,
		Items:       make([]domain.CaseItem, 0, len(def.Entries)),
	}
	for _, e := range def.Entries {
		item := items[e.Item]
		c.Items = append(c.Items, domain.CaseItem{ItemID: item.ID, Weight: e.Weight, Item: item})
	}
	return c
}
