package file

import "encoding/json"

type jsonQuestion struct {
	Category      string `json:"Category"`
	Value         int    `json:"Value"`
	Question      string `json:"Question"`
	CorrectAnswer string `json:"CorrectAnswer"`
	Options       struct {
		A string `json:"A"`
		B string `json:"B"`
		C string `json:"C"`
		D string `json:"D"`
	} `json:"Options"`
}

func decodeJSON(data []byte) ([]record, error) {
	var entries []*jsonQuestion
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		records = append(records, record{
			Category: e.Category,
			Value:    e.Value,
			Prompt:   e.Question,
			Options:  [4]string{e.Options.A, e.Options.B, e.Options.C, e.Options.D},
			Answer:   e.CorrectAnswer,
		})
	}
	return records, nil
}
