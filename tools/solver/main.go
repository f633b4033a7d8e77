// Package main solves a remote read_it instance: it rebuilds the accepted
// input from the compiled-in secrets, submits it and saves the flag.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atinyakov/flaggate/internal/gate"
)

const prompt = ">>> "

func main() {
	var (
		host      string
		port      int
		out       string
		printFlag bool
	)
	flag.StringVar(&host, "host", "challenge", "the host for the instance")
	flag.IntVar(&port, "port", 5000, "the port of the instance")
	flag.StringVar(&out, "out", "flag", "file the flag is saved to")
	flag.BoolVar(&printFlag, "print", false, "print flag to stdout rather than saving to file")
	flag.Parse()

	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(port)), 10*time.Second)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(30 * time.Second))

	found, err := solve(conn, gate.SolveReadIt())
	if err != nil {
		log.Fatal(err)
	}

	if printFlag {
		fmt.Printf("flag: %s\n", found)
		return
	}
	if err := os.WriteFile(out, []byte(found), 0600); err != nil {
		log.Fatalf("save flag: %v", err)
	}
}

// solve waits for the prompt, sends answer and returns the last line of
// the reply, which holds the flag.
func solve(conn io.ReadWriter, answer []byte) (string, error) {
	r := bufio.NewReader(conn)
	if err := readUntil(r, prompt); err != nil {
		return "", fmt.Errorf("wait for prompt: %w", err)
	}

	if _, err := conn.Write(append(bytes.Clone(answer), '\n')); err != nil {
		return "", fmt.Errorf("send answer: %w", err)
	}

	reply, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(reply), "\n"), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "Correct!") {
		return "", fmt.Errorf("answer rejected: %q", reply)
	}
	return lines[len(lines)-1], nil
}

func readUntil(r *bufio.Reader, pattern string) error {
	var seen []byte
	for !bytes.HasSuffix(seen, []byte(pattern)) {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		seen = append(seen, b)
	}
	return nil
}
