package json_types

import (
	"encoding/json"
	"strconv"
)

// String - строка из слаботипизированного JSON. GHL в одних интеграциях шлёт
// "1", в других 1 или true, поэтому числа и булевы принимаем как их текст.
// Объекты, массивы и null молча считаем пустым значением.
type String string

func (s *String) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = String(str)
	case '{', '[':
		// Составное значение на месте скаляра - не ошибка, просто пусто
		return nil
	default:
		*s = String(data)
	}

	return nil
}

func (s String) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(s))), nil
}

func (s String) Value() string {
	return string(s)
}

func (s String) IsEmpty() bool {
	return s == ""
}
