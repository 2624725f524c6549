package contracts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemasFS embed.FS

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Сначала регистрируем все схемы как ресурсы, чтобы они могли
	// ссылаться друг на друга через $ref
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, readErr := schemasFS.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		if addErr := compiler.AddResource(path, bytes.NewReader(data)); addErr != nil {
			log.Fatalf("failed to add schema resource %s: %v", path, addErr)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("error walking and adding schema resources: %v", err)
	}

	// Второй проход - компиляция и регистрация по имени события
	err = fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}

		schema, compileErr := compiler.Compile(path)
		if compileErr != nil {
			log.Printf("WARNING: could not compile schema %s: %v. Skipping.", path, compileErr)
			return nil
		}

		key := generateKeyFromPath(path)
		compiledSchemas[key] = schema
		return nil
	})
	if err != nil {
		log.Fatalf("error compiling schemas: %v", err)
	}
}

// generateKeyFromPath: "schemas/listing_upserted.json" -> "listing_upserted"
func generateKeyFromPath(path string) string {
	base := path[strings.LastIndex(path, "/")+1:]
	return strings.TrimSuffix(base, ".json")
}

// Validate проверяет сырое сообщение против схемы события.
func Validate(eventType string, data []byte) error {
	schema, ok := compiledSchemas[eventType]
	if !ok {
		return fmt.Errorf("no schema registered for event type %q", eventType)
	}

	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("event is not valid JSON: %w", err)
	}

	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("event failed schema validation: %w", err)
	}
	return nil
}
