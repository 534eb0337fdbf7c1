// Command client is a line-oriented chat client for poking at a running
// server: it joins as a named user, enters a room, prints every event it
// receives and sends each stdin line as a room message.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/gorilla/websocket"

	"sockchat/pkg/chat"
)

func main() {
	addr := flag.String("addr", "localhost:5000", "server address")
	name := flag.String("name", "guest", "display name")
	roomName := flag.String("room", "General", "room to join")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer conn.Close()

	send := func(event string, data any) {
		frame, err := chat.Encode(event, data)
		if err != nil {
			log.Fatal("encode:", err)
		}
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Fatal("write:", err)
		}
	}

	send(chat.EventUserJoin, *name)
	send(chat.EventJoinRoom, *roomName)

	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Println("read:", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		send(chat.EventSendMessage, chat.SendMessagePayload{Message: chat.TextBody(line)})
	}
}
