package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/scene"
	"github.com/df07/go-sphere-tracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	for _, line := range banner(*port) {
		log.Print(line)
	}

	if err := server.NewServer(*port).Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// banner lists the scenes served and an example render URL
func banner(port int) []string {
	names := scene.Names()
	lines := []string{"Sphere tracer render API, scenes: " + strings.Join(names, ", ")}
	if len(names) > 0 {
		lines = append(lines, fmt.Sprintf("Try http://localhost:%d/api/render?scene=%s&format=png", port, names[0]))
	}
	return lines
}
