// camclass-watch - terminal viewer for a running camclass instance
//
// Connects to the dashboard's prediction websocket and prints each
// top-3 update as it arrives.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"github.com/edgevision/go-camclass/internal/config"
	"github.com/edgevision/go-camclass/internal/httpc"
	"github.com/edgevision/go-camclass/pkg/classify"
)

type update struct {
	Time        string               `json:"time"`
	Predictions classify.Predictions `json:"predictions"`
}

func main() {
	host := flag.String("host", "localhost:"+config.HTTPPort(), "camclass host:port")
	preset := flag.String("preset", "", "apply a camera preset before watching")
	flag.Parse()

	if err := checkStatus(*host); err != nil {
		fmt.Fprintf(os.Stderr, "camclass not reachable at %s: %v\n", *host, err)
		os.Exit(1)
	}

	if *preset != "" {
		if err := applyPreset(*host, *preset); err != nil {
			fmt.Fprintf(os.Stderr, "apply preset %s: %v\n", *preset, err)
			os.Exit(1)
		}
		fmt.Printf("applied camera preset %s\n", *preset)
	}

	url := fmt.Sprintf("ws://%s/ws/predictions", *host)
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		conn.Close()
		os.Exit(0)
	}()

	fmt.Printf("watching %s\n", url)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			fmt.Fprintf(os.Stderr, "connection closed: %v\n", err)
			return
		}

		var u update
		if err := json.Unmarshal(data, &u); err != nil {
			continue
		}
		printUpdate(u)
	}
}

func printUpdate(u update) {
	fmt.Printf("%s ", u.Time)
	for i, p := range u.Predictions {
		if i > 0 {
			fmt.Print(" | ")
		}
		fmt.Printf("%s %.1f%%", p.Label, p.Prob*100)
	}
	fmt.Println()
}

// applyPreset posts a camera preset to the running instance.
func applyPreset(host, name string) error {
	body, err := json.Marshal(map[string]string{"preset": name})
	if err != nil {
		return err
	}

	resp, err := httpc.Post(fmt.Sprintf("http://%s/api/camera/config", host), "application/json", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("rejected: %s", data)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// checkStatus verifies the dashboard answers before dialing the socket.
func checkStatus(host string) error {
	resp, err := httpc.Get(fmt.Sprintf("http://%s/api/status", host))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != 200 {
		return fmt.Errorf("status endpoint returned %d", resp.StatusCode)
	}
	return nil
}
