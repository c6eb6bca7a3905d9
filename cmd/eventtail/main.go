// Command eventtail connects to the realtime endpoint and prints every event
// delivered to one account.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agora/internal/notifications"

	"github.com/gorilla/websocket"
)

var httpClient = &http.Client{Timeout: 5 * time.Second}

func main() {
	host := flag.String("host", "localhost:8375", "API server host")
	email := flag.String("email", "test@example.com", "Account email")
	password := flag.String("password", "password123", "Account password")
	token := flag.String("token", "", "Bearer token; skips the login step")
	secure := flag.Bool("tls", false, "Use https and wss")
	flag.Parse()

	httpScheme, wsScheme := "http", "ws"
	if *secure {
		httpScheme, wsScheme = "https", "wss"
	}
	base := fmt.Sprintf("%s://%s/api", httpScheme, *host)

	if *token == "" {
		t, err := login(base, *email, *password)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		*token = t
	}

	ticket, err := issueTicket(base, *token)
	if err != nil {
		log.Fatalf("Ticket issuance failed: %v", err)
	}

	u := url.URL{Scheme: wsScheme, Host: *host, Path: "/api/ws", RawQuery: "ticket=" + url.QueryEscape(ticket)}
	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		if resp != nil {
			log.Fatalf("Dial failed (%d): %v", resp.StatusCode, err)
		}
		log.Fatalf("Dial failed: %v", err)
	}
	defer func() { _ = conn.Close() }()
	log.Printf("Connected to %s, waiting for events", u.Redacted())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					log.Printf("Read failed: %v", err)
				}
				return
			}
			printEvent(message)
		}
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
	case <-interrupt:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func printEvent(message []byte) {
	var event notifications.Event
	if err := json.Unmarshal(message, &event); err != nil || event.Type == "" {
		fmt.Println(string(message))
		return
	}
	payload, _ := json.Marshal(event.Payload)
	fmt.Printf("%s  %-22s %s\n", event.CreatedAt.Local().Format(time.TimeOnly), event.Type, payload)
}

func login(base, email, password string) (string, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := httpClient.Post(base+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Token, nil
}

func issueTicket(base, token string) (string, error) {
	req, err := http.NewRequest(http.MethodPost, base+"/ws/ticket", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	var result struct {
		Ticket string `json:"ticket"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Ticket, nil
}
