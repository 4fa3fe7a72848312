package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/shoplab/checkout-go/internal/catalog"
	"github.com/shoplab/checkout-go/pkg/checkout"
	"github.com/shoplab/checkout-go/pkg/contracts"
	"github.com/shoplab/checkout-go/pkg/domain"
	"github.com/shoplab/checkout-go/pkg/kafka"
	"github.com/shoplab/checkout-go/pkg/logging"
	"github.com/shoplab/checkout-go/pkg/metrics"
	"github.com/shoplab/checkout-go/pkg/shipping"
)

type cfg struct {
	Port         string
	RatePerKg    float64
	KafkaBrokers string
	Topic        string
}

func readCfg() (cfg, error) {
	port := getenv("PORT", "8080")
	rate, err := strconv.ParseFloat(getenv("SHIPPING_RATE_PER_KG", "2.0"), 64)
	if err != nil {
		return cfg{}, errors.New("SHIPPING_RATE_PER_KG must be a number")
	}
	return cfg{
		Port:         port,
		RatePerKg:    rate,
		KafkaBrokers: getenv("KAFKA_BROKERS", ""),
		Topic:        getenv("KAFKA_TOPIC", "shop.checkouts"),
	}, nil
}

type Item struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type CheckoutRequest struct {
	Customer struct {
		Name    string  `json:"name"`
		Balance float64 `json:"balance"`
	} `json:"customer"`
	Items []Item `json:"items"`
}

type ProductView struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Shippable bool    `json:"shippable"`
}

func main() {
	cfg, err := readCfg()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	calc, err := shipping.NewCalculator(cfg.RatePerKg)
	if err != nil {
		log.Fatalf("shipping config error: %v", err)
	}
	orch := checkout.NewOrchestrator(calc)

	cat := catalog.New()
	if err := seedCatalog(cat); err != nil {
		log.Fatalf("catalog seed error: %v", err)
	}

	srvMetrics := metrics.NewCheckoutMetrics("checkout_service")

	kafkaClient := kafka.NewClient(cfg.KafkaBrokers)
	var writer *kafkago.Writer
	if kafkaClient.Enabled() {
		writer = kafkaClient.NewWriter(cfg.Topic)
		defer writer.Close()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			return
		}
		products := cat.List()
		views := make([]ProductView, 0, len(products))
		for _, p := range products {
			views = append(views, ProductView{Name: p.Name(), Price: p.Price(), Stock: p.Stock(), Shippable: p.Shippable()})
		}
		writeJSON(w, http.StatusOK, views)
	})

	mux.HandleFunc("/checkout", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			srvMetrics.LatencyMS.WithLabelValues("checkout").Observe(float64(time.Since(start).Milliseconds()))
		}()
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
			return
		}
		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
			srvMetrics.Checkouts.WithLabelValues("bad_request").Inc()
			return
		}
		if len(req.Items) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "items is required"})
			srvMetrics.Checkouts.WithLabelValues("bad_request").Inc()
			return
		}

		customer, err := domain.NewCustomer(req.Customer.Name, req.Customer.Balance)
		if err != nil {
			respondError(w, srvMetrics, err)
			return
		}

		cart := domain.NewCart()
		for _, it := range req.Items {
			p, err := cat.Lookup(strings.TrimSpace(it.Product))
			if err != nil {
				respondError(w, srvMetrics, err)
				return
			}
			if err := cart.Add(p, it.Quantity); err != nil {
				respondError(w, srvMetrics, err)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		receipt, err := orch.Checkout(ctx, customer, cart)
		if err != nil {
			respondError(w, srvMetrics, err)
			publishEvent(ctx, writer, contracts.Event{
				EventID:   uuid.NewString(),
				Customer:  customer.Name(),
				CreatedAt: time.Now().UTC(),
				Type:      contracts.EventCheckoutRejected,
				Payload:   map[string]any{"reason": err.Error()},
			})
			return
		}

		srvMetrics.Checkouts.WithLabelValues("committed").Inc()
		srvMetrics.OrderTotal.Observe(receipt.Total)
		publishEvent(ctx, writer, contracts.Event{
			EventID:    uuid.NewString(),
			CheckoutID: receipt.ID,
			Customer:   customer.Name(),
			CreatedAt:  time.Now().UTC(),
			Type:       contracts.EventCheckoutCompleted,
			Payload: map[string]any{
				"subtotal":      receipt.Subtotal,
				"shipping_fee":  receipt.ShippingFee,
				"total":         receipt.Total,
				"balance_after": receipt.BalanceAfter,
			},
		})
		writeJSON(w, http.StatusOK, receipt)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("checkout-service listening on :%s (rate=%.2f/kg, kafka=%v)", cfg.Port, cfg.RatePerKg, kafkaClient.Enabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}
}

// seedCatalog loads the demo inventory; a real deployment would load this
// from an upstream catalog feed.
func seedCatalog(cat *catalog.Catalog) error {
	in5Days := time.Now().AddDate(0, 0, 5)
	in3Days := time.Now().AddDate(0, 0, 3)

	specs := []func() (*domain.Product, error){
		func() (*domain.Product, error) {
			return domain.NewProduct("Cheese", 100, 10, domain.ExpiresOn(in5Days), domain.WithWeight(0.2))
		},
		func() (*domain.Product, error) {
			return domain.NewProduct("Biscuits", 150, 5, domain.ExpiresOn(in3Days), domain.WithWeight(0.7))
		},
		func() (*domain.Product, error) {
			return domain.NewProduct("TV", 500, 3, domain.WithWeight(15))
		},
		func() (*domain.Product, error) {
			return domain.NewProduct("Mobile", 800, 8, domain.WithWeight(0.3))
		},
		func() (*domain.Product, error) {
			return domain.NewProduct("Mobile Scratch Card", 50, 20)
		},
	}
	for _, spec := range specs {
		p, err := spec()
		if err != nil {
			return err
		}
		if err := cat.Register(p); err != nil {
			return err
		}
	}
	return nil
}

func respondError(w http.ResponseWriter, m *metrics.CheckoutMetrics, err error) {
	status, label := classify(err)
	m.Checkouts.WithLabelValues(label).Inc()
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// classify maps the domain failure taxonomy to HTTP statuses and metric
// labels.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, "empty_cart"
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusConflict, "unavailable"
	case errors.Is(err, domain.ErrExpired):
		return http.StatusConflict, "expired"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired, "insufficient_funds"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func publishEvent(ctx context.Context, writer *kafkago.Writer, evt contracts.Event) {
	if writer == nil {
		return
	}
	if err := kafka.PublishJSON(ctx, writer, evt.Customer, evt); err != nil {
		log.Printf("event publish error: %v", err)
		return
	}
	logging.Log(logging.Fields{
		Service:    "checkout-service",
		CheckoutID: evt.CheckoutID,
		Customer:   evt.Customer,
		Stage:      evt.Type,
		Status:     "emitted",
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
