package file

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"
)

type xmlQuestion struct {
	Category      string `xml:"Category"`
	Value         string `xml:"Value"`
	QuestionText  string `xml:"QuestionText"`
	CorrectAnswer string `xml:"CorrectAnswer"`
	Options       struct {
		A string `xml:"OptionA"`
		B string `xml:"OptionB"`
		C string `xml:"OptionC"`
		D string `xml:"OptionD"`
	} `xml:"Options"`
}

// decodeXML collects every <QuestionItem> element, at any depth.
func decodeXML(data []byte) ([]record, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var records []record
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "QuestionItem" {
			continue
		}
		var item xmlQuestion
		if err := dec.DecodeElement(&item, &start); err != nil {
			return nil, err
		}
		value, _ := strconv.Atoi(strings.TrimSpace(item.Value))
		records = append(records, record{
			Category: item.Category,
			Value:    value,
			Prompt:   item.QuestionText,
			Options:  [4]string{item.Options.A, item.Options.B, item.Options.C, item.Options.D},
			Answer:   item.CorrectAnswer,
		})
	}
}
