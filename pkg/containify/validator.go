package containify

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"github.com/NoahWhiteson/Containify/pkg/types"
)

// ValidateLimits checks the declared resource limits. Memory and storage
// accept zero as "unset"; the CPU share must be an actual percentage.
func ValidateLimits(limits types.Limits) error {
	if limits.CPUPercent < 1 || limits.CPUPercent > 100 {
		return fmt.Errorf("%w: cpu percent %d must be between 1 and 100", ErrInvalidLimits, limits.CPUPercent)
	}
	return nil
}

// RecordSchema reflects the metadata record type into a JSON Schema.
func RecordSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(&types.Record{})
	return json.MarshalIndent(schema, "", "  ")
}

// ValidateRecordFile checks a metadata.json file against the reflected
// record schema and returns one message per violation.
func ValidateRecordFile(path string) ([]string, error) {
	schemaBytes, err := RecordSchema()
	if err != nil {
		return nil, fmt.Errorf("serializing schema: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewReferenceLoader("file://" + abs)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}

// Audit walks the containers directory and cross-checks every entry
// against its metadata record. With repair enabled, entries without a
// readable record are removed and fixable record fields are rewritten.
func (c *Containify) Audit(repair bool) (err error) {
	fmt.Println("Starting containify store audit...")
	if repair {
		fmt.Println("Repair mode enabled.")
	}

	entries, err := os.ReadDir(c.Options.ContainersPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Containers directory does not exist yet; nothing to audit.")
			return nil
		}
		return fmt.Errorf("audit: reading containers directory: %w", err)
	}

	problems := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			fmt.Printf("  [WARNING] Stray file in containers directory: %s\n", entry.Name())
			problems++
			continue
		}
		name := entry.Name()
		fmt.Printf("  Auditing container: %s\n", name)

		if ValidateName(name) != nil {
			fmt.Printf("    [ERROR] Directory name %q is not a valid container name.\n", name)
			problems++
			continue
		}

		rec, readErr := c.ReadRecord(name)
		if readErr != nil {
			fmt.Printf("    [ERROR] Metadata unreadable: %v\n", readErr)
			problems++
			if repair {
				fmt.Printf("    Repair: Removing container directory %s...\n", c.ContainerDir(name))
				if rmErr := os.RemoveAll(c.ContainerDir(name)); rmErr != nil {
					fmt.Printf("      [ERROR] Failed to remove %s: %v\n", name, rmErr)
				} else {
					fmt.Printf("      Removed %s.\n", name)
				}
			}
			continue
		}

		dirty := false
		if rec.Name != name {
			fmt.Printf("    [ERROR] Record name %q does not match directory %q.\n", rec.Name, name)
			problems++
			if repair {
				rec.Name = name
				dirty = true
			}
		}
		if rec.Backend != types.BackendLocal && rec.Backend != types.BackendDocker {
			fmt.Printf("    [ERROR] Unknown backend %q.\n", rec.Backend)
			problems++
		}
		if rec.Backend == types.BackendDocker {
			if rec.BackendData.Docker == nil || rec.BackendData.Docker.ContainerID == "" {
				fmt.Printf("    [ERROR] Docker record without an engine container id.\n")
				problems++
			}
		}
		if limitsErr := ValidateLimits(rec.Limits); limitsErr != nil {
			fmt.Printf("    [ERROR] Invalid limits: %v\n", limitsErr)
			problems++
		}
		if rec.Paths.ContainerDir != c.ContainerDir(name) {
			fmt.Printf("    [WARNING] Recorded container dir %q does not match the store layout.\n", rec.Paths.ContainerDir)
			problems++
			if repair {
				rec.Paths = types.Paths{
					Root:         c.Options.RootDir,
					ContainerDir: c.ContainerDir(name),
					WorkspaceDir: c.WorkspaceDir(name),
				}
				dirty = true
			}
		}
		if _, statErr := os.Stat(c.WorkspaceDir(name)); os.IsNotExist(statErr) {
			fmt.Printf("    [WARNING] Workspace directory missing.\n")
			problems++
			if repair {
				fmt.Printf("    Repair: Recreating workspace for %s...\n", name)
				if mkErr := os.MkdirAll(c.WorkspaceDir(name), 0o755); mkErr != nil {
					fmt.Printf("      [ERROR] Failed to recreate workspace: %v\n", mkErr)
				}
			}
		}

		if dirty {
			fmt.Printf("    Repair: Rewriting metadata for %s...\n", name)
			if writeErr := c.WriteRecord(name, rec); writeErr != nil {
				fmt.Printf("      [ERROR] Failed to rewrite metadata: %v\n", writeErr)
			}
		}
	}

	if problems == 0 {
		fmt.Println("\nAudit finished: no problems found.")
	} else {
		fmt.Printf("\nAudit finished: %d problem(s) found.\n", problems)
	}
	return nil
}
