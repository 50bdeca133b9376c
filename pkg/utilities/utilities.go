package utilities

import (
	"encoding/json"
	"log"
)

type Serializable interface {
	Serialize() ([]byte, error)
}

func Serialize[T any](content T) ([]byte, error) {
	return json.Marshal(content)
}

func Map[T any, U any](arr []T, fn func(T) U) []U {
	mapped := make([]U, len(arr))
	for i, x := range arr {
		mapped[i] = fn(x)
	}

	return mapped
}

func Ternary[T any](cond bool, evalTrue, evalFalse T) T {
	if cond {
		return evalTrue
	}
	return evalFalse
}

func FailOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %v", msg, err)
	}
}
