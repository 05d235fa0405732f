package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "github.com/toma2023/fluent-academy-serverside"

const (
	contextsPrefix  = modulePath + "/contexts/"
	platformPrefix  = modulePath + "/internal/platform/"
	appPrefix       = modulePath + "/internal/app/"
	messagingImport = modulePath + "/internal/platform/messaging"
	docstoreImport  = modulePath + "/internal/platform/docstore"
)

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerRule lists what a service layer may import besides the standard
// library. ownLayers are relative to the service root; platform entries are
// full import paths.
type layerRule struct {
	ownLayers  []string
	platform   []string
	thirdParty bool
}

var layerRules = map[string]layerRule{
	"domain": {
		ownLayers: []string{"domain"},
	},
	"application": {
		ownLayers: []string{"application", "domain", "ports"},
	},
	"ports": {
		ownLayers: []string{"domain"},
		platform:  []string{messagingImport},
	},
	"transport": {
		ownLayers: []string{"transport", "domain"},
	},
	"adapters": {
		ownLayers:  []string{"adapters", "application", "domain", "ports", "transport"},
		platform:   []string{docstoreImport},
		thirdParty: true,
	},
	// module.go is the per-service composition file.
	"module.go": {
		ownLayers:  []string{"adapters", "application", "domain", "ports"},
		platform:   []string{docstoreImport, messagingImport},
		thirdParty: true,
	},
	"doc.go": {},
}

// platformMayImportContexts names the platform packages that mount modules.
var platformMayImportContexts = map[string]bool{
	"httpserver": true,
}

func main() {
	violations := collectViolations("contexts")
	violations = append(violations, collectViolations(filepath.Join("internal", "platform"))...)
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File == violations[j].File {
			if violations[i].Line == violations[j].Line {
				return violations[i].Import < violations[j].Import
			}
			return violations[i].Line < violations[j].Line
		}
		return violations[i].File < violations[j].File
	})

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func collectViolations(root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		normalized := filepath.ToSlash(path)
		check, ok := checkerFor(normalized)
		if !ok {
			return nil
		}
		violations = append(violations, validateFile(path, normalized, check)...)
		return nil
	})

	return violations
}

// checkerFor picks the import rule for a repo-relative file path.
func checkerFor(normalizedPath string) (func(string) string, bool) {
	parts := strings.Split(normalizedPath, "/")
	switch {
	case len(parts) >= 4 && parts[0] == "contexts":
		servicePrefix := fmt.Sprintf("%s%s/%s", contextsPrefix, parts[1], parts[2])
		layer := parts[3]
		return func(importPath string) string {
			return checkServiceImport(servicePrefix, layer, importPath)
		}, true
	case len(parts) >= 4 && parts[0] == "internal" && parts[1] == "platform":
		pkg := parts[2]
		return func(importPath string) string {
			return checkPlatformImport(pkg, importPath)
		}, true
	}
	return nil, false
}

func validateFile(path string, normalizedPath string, check func(string) string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: normalizedPath, Line: 1, Rule: "file must parse"}}
	}

	var violations []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		if rule := check(importPath); rule != "" {
			violations = append(violations, violation{
				File:   normalizedPath,
				Line:   fset.Position(imp.Pos()).Line,
				Import: importPath,
				Rule:   rule,
			})
		}
	}
	return violations
}

// checkServiceImport returns the broken rule, or "" when the import is fine.
func checkServiceImport(servicePrefix string, layer string, importPath string) string {
	if isStdlib(importPath) {
		return ""
	}
	if strings.HasPrefix(importPath, contextsPrefix) && !hasPrefix(importPath, servicePrefix) {
		return "cross-module imports are forbidden"
	}

	rule, known := layerRules[layer]
	if !known {
		return fmt.Sprintf("unknown service layer %q", layer)
	}

	if hasPrefix(importPath, servicePrefix) {
		for _, own := range rule.ownLayers {
			if hasPrefix(importPath, servicePrefix+"/"+own) {
				return ""
			}
		}
		return fmt.Sprintf("%s must not import %s", layer, strings.TrimPrefix(importPath, servicePrefix+"/"))
	}

	if strings.HasPrefix(importPath, appPrefix) {
		return fmt.Sprintf("%s must not import the composition root", layer)
	}
	if strings.HasPrefix(importPath, platformPrefix) {
		if isAllowed(importPath, rule.platform) {
			return ""
		}
		return fmt.Sprintf("%s must not import %s", layer, strings.TrimPrefix(importPath, modulePath+"/"))
	}

	if strings.HasPrefix(importPath, modulePath+"/") {
		return fmt.Sprintf("%s import is outside explicit allowlist", layer)
	}
	if !rule.thirdParty {
		return fmt.Sprintf("%s must not import third-party packages", layer)
	}
	return ""
}

func checkPlatformImport(pkg string, importPath string) string {
	if strings.HasPrefix(importPath, appPrefix) {
		return "platform must not import the composition root"
	}
	if strings.HasPrefix(importPath, contextsPrefix) && !platformMayImportContexts[pkg] {
		return fmt.Sprintf("platform/%s must not import service modules", pkg)
	}
	return ""
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, allowedPrefixes []string) bool {
	for _, p := range allowedPrefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string) bool {
	if strings.HasPrefix(importPath, modulePath+"/") {
		return false
	}
	first := importPath
	if idx := strings.Index(first, "/"); idx != -1 {
		first = first[:idx]
	}
	return !strings.Contains(first, ".")
}
