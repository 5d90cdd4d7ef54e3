package file

import "gopkg.in/yaml.v3"

type yamlQuestion struct {
	Category      string `yaml:"category"`
	Value         int    `yaml:"value"`
	Question      string `yaml:"question"`
	CorrectAnswer string `yaml:"correct_answer"`
	Options       struct {
		A string `yaml:"a"`
		B string `yaml:"b"`
		C string `yaml:"c"`
		D string `yaml:"d"`
	} `yaml:"options"`
}

func decodeYAML(data []byte) ([]record, error) {
	var entries []yamlQuestion
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	records := make([]record, 0, len(entries))
	for _, e := range entries {
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
