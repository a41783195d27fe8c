// Package seed loads catalog items and operator accounts from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	domainErrors "github.com/polkiloo/restomart/internal/domain/errors"
	"github.com/polkiloo/restomart/internal/domain/model"
)

// File is the on-disk seed document.
type File struct {
	Items    []Item    `yaml:"items"`
	Accounts []Account `yaml:"accounts"`
}

// Item is one catalog entry. Available defaults to true when omitted.
type Item struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Price     int64  `yaml:"price"`
	Category  string `yaml:"category"`
	Available *bool  `yaml:"available,omitempty"`
	Icon      string `yaml:"icon,omitempty"`
}

// Account is an operator created when missing.
type Account struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// CatalogImporter stores catalog items.
type CatalogImporter interface {
	Import(ctx context.Context, items []model.CatalogItem) error
}

// AccountCreator stores operator accounts.
type AccountCreator interface {
	CreateUser(ctx context.Context, login, password string, role model.Role) (*model.User, error)
}

// Decode parses a seed document.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &f, nil
}

// LoadFile reads and parses the seed document at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file %q: %w", path, err)
	}
	defer fh.Close()
	return Decode(fh)
}

// CatalogItems converts the YAML entries to domain items.
func (f *File) CatalogItems() []model.CatalogItem {
	items := make([]model.CatalogItem, 0, len(f.Items))
	for _, it := range f.Items {
		available := true
		if it.Available != nil {
			available = *it.Available
		}
		items = append(items, model.CatalogItem{
			ID:        it.ID,
			Name:      it.Name,
			Price:     it.Price,
			Category:  model.Category(it.Category),
			Available: available,
			Icon:      it.Icon,
		})
	}
	return items
}

// Apply upserts the catalog and creates missing accounts. Existing logins are
// left untouched so the command can be re-run safely.
func Apply(ctx context.Context, f *File, catalog CatalogImporter, accounts AccountCreator, logger *slog.Logger) error {
	if len(f.Items) > 0 {
		if err := catalog.Import(ctx, f.CatalogItems()); err != nil {
			return fmt.Errorf("import catalog: %w", err)
		}
		logger.Info("catalog imported", slog.Int("items", len(f.Items)))
	}

	for _, acc := range f.Accounts {
		role := model.ParseRole(acc.Role)
		if role == model.RoleGuest {
			return fmt.Errorf("account %q: unknown role %q", acc.Login, acc.Role)
		}
		_, err := accounts.CreateUser(ctx, acc.Login, acc.Password, role)
		switch {
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			logger.Info("account exists", slog.String("login", acc.Login))
		case err != nil:
			return fmt.Errorf("create account %q: %w", acc.Login, err)
		default:
			logger.Info("account created", slog.String("login", acc.Login), slog.String("role", string(role)))
		}
	}
	return nil
}
