// Package main provides a load probe for the notification WebSocket channel.
// It logs users in over HTTP, binds one live connection per user and counts
// delivered frames while messages flow between the probes.
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
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// Metrics tracks the probe results
type Metrics struct {
	ConnectionsAttempted int64
	ConnectionsSuccess   int64
	ConnectionsFailed    int64
	MessagesSent         int64
	FramesReceived       int64
	Errors               int64
}

var metrics Metrics

func main() {
	host := flag.String("host", "localhost:8390", "API server host")
	username := flag.String("username", "probe_user", "Test user username prefix")
	password := flag.String("password", "ProbePassword1!", "Test user password")
	clients := flag.Int("clients", 10, "Number of concurrent clients")
	duration := flag.Duration("duration", 30*time.Second, "Probe duration")
	flag.Parse()

	log.Printf("Starting WebSocket probe")
	log.Printf("Target: %s", *host)
	log.Printf("Clients: %d", *clients)
	log.Printf("Duration: %v", *duration)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	stopChan := make(chan struct{})

	for i := 0; i < *clients; i++ {
		name := fmt.Sprintf("%s%d", *username, i)
		user, err := registerOrLogin(*host, name, *password)
		if err != nil {
			log.Printf("auth failed for %s: %v", name, err)
			atomic.AddInt64(&metrics.Errors, 1)
			continue
		}
		wg.Add(1)
		go runClient(*host, user, stopChan, &wg)
		time.Sleep(50 * time.Millisecond) // stagger connections
	}

	select {
	case <-time.After(*duration):
		log.Println("Probe duration reached")
	case <-interrupt:
		log.Println("Interrupted by user")
	}

	close(stopChan)
	log.Println("Waiting for clients to disconnect...")
	wg.Wait()

	printMetrics()
}

type probeUser struct {
	ID    uint
	Token string
}

func registerOrLogin(host, username, password string) (*probeUser, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(fmt.Sprintf("http://%s/api/register", host),
		"application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusConflict {
		// Already exists from a previous run; log in instead.
		resp2, err := http.Post(fmt.Sprintf("http://%s/api/login", host),
			"application/json", bytes.NewBuffer(body))
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp2.Body.Close() }()
		if resp2.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("login failed with status %d", resp2.StatusCode)
		}
		resp = resp2
	} else if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("register failed with status %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &probeUser{ID: result.User.ID, Token: result.Token}, nil
}

func runClient(host string, user *probeUser, stopChan chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	atomic.AddInt64(&metrics.ConnectionsAttempted, 1)

	u := url.URL{Scheme: "ws", Host: host, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		atomic.AddInt64(&metrics.ConnectionsFailed, 1)
		log.Printf("dial failed for user %d: %v", user.ID, err)
		return
	}
	defer func() { _ = conn.Close() }()

	// Bind the connection with the auth frame.
	auth := map[string]interface{}{"type": "auth", "userId": user.ID}
	if err := conn.WriteJSON(auth); err != nil {
		atomic.AddInt64(&metrics.ConnectionsFailed, 1)
		return
	}
	atomic.AddInt64(&metrics.ConnectionsSuccess, 1)

	// Reader: count pushes until the socket dies.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
			atomic.AddInt64(&metrics.FramesReceived, 1)
		}
	}()

	// Writer: periodically message another probe user over HTTP so the
	// server has something to push.
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopChan:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		case <-done:
			return
		case <-ticker.C:
			if err := sendMessage(host, user, user.ID+1); err != nil {
				atomic.AddInt64(&metrics.Errors, 1)
			} else {
				atomic.AddInt64(&metrics.MessagesSent, 1)
			}
		}
	}
}

func sendMessage(host string, user *probeUser, receiverID uint) error {
	payload := map[string]interface{}{
		"receiver_id": receiverID,
		"content":     fmt.Sprintf("probe ping at %s", time.Now().Format(time.RFC3339)),
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost,
		fmt.Sprintf("http://%s/api/messages", host), bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+user.Token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("send failed with status %d", resp.StatusCode)
	}
	return nil
}

func printMetrics() {
	log.Println("=== Probe Results ===")
	log.Printf("Connections attempted: %d", atomic.LoadInt64(&metrics.ConnectionsAttempted))
	log.Printf("Connections succeeded: %d", atomic.LoadInt64(&metrics.ConnectionsSuccess))
	log.Printf("Connections failed:    %d", atomic.LoadInt64(&metrics.ConnectionsFailed))
	log.Printf("Messages sent:         %d", atomic.LoadInt64(&metrics.MessagesSent))
	log.Printf("Frames received:       %d", atomic.LoadInt64(&metrics.FramesReceived))
	log.Printf("Errors:                %d", atomic.LoadInt64(&metrics.Errors))
}
