package cli

import (
	"encoding/json"
	"fmt"
)

// printJSON pretty-prints a value as JSON
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
