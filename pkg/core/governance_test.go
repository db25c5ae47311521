//go:build governance

package core_test

import (
	"go/types"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/alchemist"

// singleUse lists core names that only one package names directly. The
// taxonomy is owned by grammar patterns; severities are produced by the
// validity checks and printed by the CLI through Problem values.
var singleUse = map[string]bool{
	"WordType": true, "WordTypes": true, "ParseWordType": true,
	"PhraseType": true, "PhraseTypes": true, "ParsePhraseType": true,
	"WordClass": true, "ParseWordClass": true,
	"Severity": true, "ParseSeverity": true,
}

func loadModule(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}
	return pkgs
}

// TestGovernance_CoreCohesion verifies that exported core names are shared by
// at least two packages. A name with a single user belongs in that package.
func TestGovernance_CoreCohesion(t *testing.T) {
	pkgs := loadModule(t, packages.NeedName|packages.NeedImports|packages.NeedTypes|
		packages.NeedTypesInfo|packages.NeedDeps)

	corePath := modulePath + "/pkg/core"
	users := make(map[types.Object]map[string]bool)
	for _, p := range pkgs {
		if p.PkgPath != corePath {
			continue
		}
		scope := p.Types.Scope()
		for _, name := range scope.Names() {
			if obj := scope.Lookup(name); obj.Exported() {
				users[obj] = make(map[string]bool)
			}
		}
	}
	if len(users) == 0 {
		t.Fatal("Could not find pkg/core")
	}

	for _, p := range pkgs {
		if p.PkgPath == corePath || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if set, ok := users[obj]; ok {
				set[strings.TrimPrefix(p.PkgPath, modulePath+"/")] = true
			}
		}
	}

	for obj, set := range users {
		name := obj.Name()
		switch {
		case len(set) == 0:
			t.Logf("WARNING: Unused core name: %s (consider deleting)", name)
		case len(set) == 1 && !singleUse[name]:
			var only []string
			for k := range set {
				only = append(only, k)
			}
			sort.Strings(only)
			t.Errorf("COHESION VIOLATION: 'core.%s' is used only by '%s'; move it there.", name, only[0])
		}
	}
}

// TestGovernance_NoTypeAliasReexports ensures no package re-exports a core
// type under an alias.
func TestGovernance_NoTypeAliasReexports(t *testing.T) {
	pkgs := loadModule(t, packages.NeedName|packages.NeedImports|packages.NeedTypes)

	corePath := modulePath + "/pkg/core"
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 || pkg.PkgPath == corePath {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			tn, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !tn.IsAlias() {
				continue
			}
			named, ok := tn.Type().(*types.Named)
			if !ok || named.Obj().Pkg() == nil || named.Obj().Pkg().Path() != corePath {
				continue
			}
			t.Errorf("PURITY VIOLATION: '%s' re-exports core.%s as '%s'; use core.%s directly.",
				strings.TrimPrefix(pkg.PkgPath, modulePath+"/"), named.Obj().Name(), name, named.Obj().Name())
		}
	}
}
