//go:build ignore

// Публикует тестовое событие выбора в stream:location:selected, чтобы проверить cmd/worker.
//
//	go run scripts/test_publish.go -redis localhost:6379
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/address-search/internal/domain"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	stream := flag.String("stream", domain.StreamLocationSelected, "Selection stream")
	cleared := flag.Bool("cleared", false, "Publish a cleared selection instead")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	var candidate *domain.LocationCandidate
	if !*cleared {
		candidate = &domain.LocationCandidate{
			ID:          "240109189",
			Label:       "Barcelona, Barcelonès, Barcelona, Catalunya, España",
			Category:    "city",
			Class:       "boundary",
			Coordinates: domain.Coordinates{Lat: "41.3828939", Lon: "2.1774322"},
			Raw:         json.RawMessage(`{"place_id":240109189,"osm_type":"relation","type":"city"}`),
		}
	}
	event := domain.NewSelectionEvent("test-session", candidate)

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish: %v", err)
	}

	fmt.Printf("Published %s event %s to %s (message %s)\n", event.Kind(), event.EventID, *stream, id)
	fmt.Println(string(data))
}
