// Package fingerprint вычисляет контентный отпечаток ресурса для ETag.
// Отпечаток — xxhash64-дайджест канонической JSON-формы значения: он меняется
// тогда и только тогда, когда меняется любое поле, включая вложенный профиль.
package fingerprint

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Compute сериализует значение в JSON и возвращает отпечаток
// в виде готового значения заголовка ETag: "9a3bc41d07f2e855".
func Compute(v any) (string, error) {
	const op = "fingerprint.Compute"
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Sprintf("%q", fmt.Sprintf("%016x", xxhash.Sum64(data))), nil
}
