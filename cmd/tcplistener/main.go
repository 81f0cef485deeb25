package main

import (
	"flag"
	"fmt"
	"net"
	"time"

	"github.com/Brownie44l1/hanode/internal/request"
	"github.com/Brownie44l1/hanode/internal/response"
)

// tcplistener prints what the parser makes of each incoming request.
func main() {
	addr := flag.String("addr", ":42069", "address to listen on")
	flag.Parse()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		fmt.Println("Listen error:", err)
		return
	}
	defer listener.Close()
	fmt.Printf("Listening on %s...\n", *addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Accept error:", err)
			continue
		}

		handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	raw, err := request.ReadRaw(conn, make([]byte, request.DefaultChunkSize), 1<<20)
	if err != nil {
		fmt.Println("Read error:", err)
		return
	}
	fmt.Printf("Raw (%d bytes): %q\n", len(raw), raw)

	req, err := request.Parse(raw)
	if err != nil {
		fmt.Println("Parse error:", err)
		response.Encode(conn, response.BadRequest(string(raw), err), "", response.WireStandard)
		return
	}

	fmt.Println("Request Line")
	fmt.Printf("Method: %s\n", req.Method)
	fmt.Printf("URI: %s\n", req.URI)
	fmt.Printf("Version: %s\n", req.Version)
	if req.HasBody() {
		fmt.Println("Body")
		fmt.Printf("%s\n", req.Body)
	}

	response.Encode(conn, response.OK("Hello from your HTTP server!\n"), req.Version, response.WireStandard)
}
