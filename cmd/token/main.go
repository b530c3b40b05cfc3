// token は開発・動作確認用のアクセストークンを発行する
//
//	go run ./cmd/token -user user-1 -role admin
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/config"
	"github.com/sanosuguru/go-theatre-ticket-reservation/internal/domain/user"
)

func main() {
	userID := flag.String("user", "", "ユーザーID (sub)")
	role := flag.String("role", string(user.RoleCustomer), "customer または admin")
	ttl := flag.Duration("ttl", 0, "有効期間（0 なら JWT_TOKEN_TTL）")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user は必須です")
		os.Exit(2)
	}
	r := user.Role(*role)
	if r != user.RoleCustomer && r != user.RoleAdmin {
		fmt.Fprintf(os.Stderr, "不明なロール: %s\n", *role)
		os.Exit(2)
	}
	if *ttl == 0 {
		*ttl = cfg.Auth.TokenTTL
	}

	token, err := middleware.IssueToken(cfg.Auth.JWTSecret, user.Identity{UserID: *userID, Role: r}, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "トークンの発行に失敗しました: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
