package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"sitestock-backend/utils"
)

// Печатает bcrypt-хэш ключа оператора для OPERATOR_KEY_HASH.
// Ключ берется из аргумента или читается из stdin.
func main() {
	key := ""
	if len(os.Args) > 1 {
		key = os.Args[1]
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatal("Ошибка чтения ключа:", err)
		}
		key = strings.TrimSpace(line)
	}

	if key == "" {
		log.Fatal("Использование: go run ./scripts/hash_operator_key <ключ>")
	}

	hash, err := utils.HashOperatorKey(key)
	if err != nil {
		log.Fatal("Ошибка хэширования ключа:", err)
	}

	fmt.Printf("OPERATOR_KEY_HASH=%s\n", hash)
}
