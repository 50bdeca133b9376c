package utilities

import (
	"encoding/json"
	"os"
)

type JsonConfigObj[U any] interface {
	ConvertToDomain() U
}

func ReadConfig[T JsonConfigObj[U], U any](file string) (U, error) {
	var empty U

	fileContent, err := os.ReadFile(file)
	if err != nil {
		return empty, err
	}

	var config T
	err = json.Unmarshal(fileContent, &config)
	if err != nil {
		return empty, err
	}

	return config.ConvertToDomain(), nil
}

func ConvertJsonArrayToDomain[T JsonConfigObj[U], U any](jsonObjs []T) []U {
	return Map(jsonObjs, func(obj T) U { return obj.ConvertToDomain() })
}
