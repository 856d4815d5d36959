package dialect

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// flexIDs is a chain-id list that several dialects encode as a bare string
// when there is a single id and as a list otherwise.
type flexIDs []string

func (ids flexIDs) MarshalJSON() ([]byte, error) {
	if len(ids) == 1 {
		return json.Marshal(ids[0])
	}
	return json.Marshal([]string(ids))
}

func (ids *flexIDs) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*ids = flexIDs{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("chain id must be a string or list of strings")
	}
	*ids = flexIDs(many)
	return nil
}

func (ids flexIDs) MarshalYAML() (interface{}, error) {
	if len(ids) == 1 {
		return ids[0], nil
	}
	return []string(ids), nil
}

func (ids *flexIDs) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*ids = flexIDs{value.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*ids = flexIDs(many)
		return nil
	}
	return fmt.Errorf("chain id must be a string or list of strings")
}

// marshalJSONIndent renders v the way every JSON dialect here is written:
// two-space indentation and a trailing newline.
func marshalJSONIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
