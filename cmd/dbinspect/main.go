package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/dueldisk/dueldisk-server/internal/domain"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/DuelDisk/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	cardCount := 0
	ownedCount := 0
	proxyCount := 0
	totalCopies := 0

	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("card:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte("card:")); it.ValidForPrefix([]byte("card:")); it.Next() {
			item := it.Item()
			key := string(item.Key())

			// Skip index keys
			if strings.HasPrefix(key, "card:idx:") {
				continue
			}

			err := item.Value(func(val []byte) error {
				var card domain.Card
				if err := json.Unmarshal(val, &card); err != nil {
					return err
				}

				cardCount++
				if card.Owned {
					ownedCount++
					totalCopies += card.Quantity
				} else {
					proxyCount++
				}

				if cardCount <= 5 {
					fmt.Printf("Card: %s\n", card.Name)
					fmt.Printf("  ID: %s\n", card.ID)
					fmt.Printf("  Kind: %s\n", card.Kind)
					fmt.Printf("  Owned: %v (x%d)\n", card.Owned, card.Quantity)
					fmt.Println()
				}

				return nil
			})
			if err != nil {
				log.Printf("Error reading card %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating cards: %v", err)
	}

	deckCount := 0
	totalSlots := 0

	err = db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("deck:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte("deck:")); it.ValidForPrefix([]byte("deck:")); it.Next() {
			item := it.Item()
			key := string(item.Key())

			if strings.HasPrefix(key, "deck:idx:") {
				continue
			}

			err := item.Value(func(val []byte) error {
				var deck domain.Deck
				if err := json.Unmarshal(val, &deck); err != nil {
					return err
				}

				deckCount++
				slots := len(deck.MainCards) + len(deck.ExtraCards) + len(deck.SideCards)
				totalSlots += slots

				if deckCount <= 5 {
					fmt.Printf("Deck: %s\n", deck.Name)
					fmt.Printf("  ID: %s\n", deck.ID)
					fmt.Printf("  Main: %d  Extra: %d  Side: %d\n",
						len(deck.MainCards), len(deck.ExtraCards), len(deck.SideCards))
					fmt.Println()
				}

				return nil
			})
			if err != nil {
				log.Printf("Error reading deck %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating decks: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Total cards: %d (%d owned, %d proxy)\n", cardCount, ownedCount, proxyCount)
	fmt.Printf("Total owned copies: %d\n", totalCopies)
	fmt.Printf("Total decks: %d\n", deckCount)
	if deckCount > 0 {
		fmt.Printf("Average cards per deck: %.1f\n", float64(totalSlots)/float64(deckCount))
	}
}
