//go:build ignore

// Ставит объекты в очередь геокодирования вручную:
//
//	go run scripts/requeue_geocoding.go -redis localhost:6379 -ids 12,15,40
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/innovation-atlas/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	rawIDs := flag.String("ids", "", "comma separated object ids")
	flag.Parse()

	if *rawIDs == "" {
		log.Fatal("-ids is required")
	}

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	for _, part := range strings.Split(*rawIDs, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			log.Fatalf("Invalid object id %q", part)
		}

		data, err := json.Marshal(domain.GeocodeRequestedEvent{ObjectID: id, RequestedAt: time.Now().UTC()})
		if err != nil {
			log.Fatalf("Failed to marshal event: %v", err)
		}

		msgID, err := client.XAdd(ctx, &redis.XAddArgs{
			Stream: domain.StreamObjectGeocode,
			Values: map[string]interface{}{"data": string(data)},
		}).Result()
		if err != nil {
			log.Fatalf("Failed to publish event: %v", err)
		}

		fmt.Printf("object %d queued as %s\n", id, msgID)
	}
}
