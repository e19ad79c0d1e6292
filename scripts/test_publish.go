//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type VenueAddEvent struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Lat  float64   `json:"lat"`
	Lon  float64   `json:"lon"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	count := flag.Int("n", 1, "Number of random venues to publish (the first one is always Paris)")
	wait := flag.Duration("wait", 5*time.Second, "How long to wait for results on stream:venue:done")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Результаты читаем только новее момента публикации
	startID := "$"

	for i := 0; i < *count; i++ {
		event := VenueAddEvent{ID: uuid.New(), Name: "Paris", Lat: 48.8566, Lon: 2.3522}
		if i > 0 {
			event.Name = randomName()
			event.Lat = 41.303 + rand.Float64()*(51.124-41.303)
			event.Lon = -5.725 + rand.Float64()*(9.562+5.725)
		}

		data, err := json.Marshal(event)
		if err != nil {
			log.Fatalf("Failed to marshal event: %v", err)
		}

		id, err := client.XAdd(ctx, &redis.XAddArgs{
			Stream: "stream:venue:add",
			Values: map[string]interface{}{
				"data": string(data),
			},
		}).Result()
		if err != nil {
			log.Fatalf("Failed to publish event: %v", err)
		}
		log.Printf("Published %s (%s) as %s", event.Name, event.ID, id)
	}

	deadline := time.Now().Add(*wait)
	received := 0
	for received < *count && time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{"stream:venue:done", startID},
			Block:   time.Until(deadline),
		}).Result()
		if err == redis.Nil {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read results: %v", err)
		}
		for _, s := range streams {
			for _, msg := range s.Messages {
				log.Printf("Result %s: %v", msg.ID, msg.Values["data"])
				startID = msg.ID
				received++
			}
		}
	}

	log.Printf("Received %d/%d results", received, *count)
}

func randomName() string {
	const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, 7)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
