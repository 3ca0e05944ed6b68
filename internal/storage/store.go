package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Файловые сторы перечитывают и перезаписывают коллекцию целиком на каждую
// операцию. Частичных обновлений нет: время жизни загруженного списка —
// ровно один вызов обработчика.

func readCollection(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// writeCollection пишет JSON через временный файл с переименованием, чтобы
// упавшая запись не оставила за собой обрезанный стор.
func writeCollection(path string, in interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace collection: %w", err)
	}
	return nil
}
