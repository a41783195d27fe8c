package test

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Packages whose own tests import this package must never be imported from here.
var forbiddenImports = []string{
	"github.com/polkiloo/restomart/internal/adapter/ordercode",
	"github.com/polkiloo/restomart/internal/app",
	"github.com/polkiloo/restomart/internal/di",
	"github.com/polkiloo/restomart/internal/server/",
	"github.com/polkiloo/restomart/internal/usecase",
}

func TestHelpersDoNotImportPackagesUnderTest(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			for _, forbidden := range forbiddenImports {
				if strings.HasPrefix(path, forbidden) {
					t.Errorf("%s imports %s, which would create a test import cycle", name, path)
				}
			}
		}
	}
}
