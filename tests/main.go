package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"barbershop/config"
	"barbershop/database/kv"
	appointmentRepo "barbershop/database/repository/appointment"
	catalogRepo "barbershop/database/repository/catalog"
	ownerRepo "barbershop/database/repository/owner"
	shopRepo "barbershop/database/repository/shop"
	"barbershop/models"
	"barbershop/services/auth"
	"barbershop/services/catalog"
	"barbershop/utils"
)

// Seeds a demo shop: default catalogue, an owner login and a week of
// appointments for the reports screen.
//
//	SEED_SHOP=centro SEED_EMAIL=dono@centro.com SEED_PASSWORD=segredo123 go run ./tests
func main() {
	config.LoadConfig()
	utils.InitRedis()
	store := kv.NewRedisStore(utils.GetRedisClient())

	shopID := envOr("SEED_SHOP", "barbearia-demo")
	email := envOr("SEED_EMAIL", "dono@barbearia.demo")
	password := envOr("SEED_PASSWORD", "barbearia123")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	shops := shopRepo.NewKVShopRepo(store)
	if err := shops.Register(ctx, shopID); err != nil {
		log.Fatalf("Failed to register shop: %v", err)
	}

	cat := catalog.NewCatalogService(catalogRepo.NewKVCatalogRepo(store), utils.GetLogger())
	services, err := cat.Services(ctx, shopID)
	if err != nil {
		log.Fatalf("Failed to seed services: %v", err)
	}
	pros, err := cat.Professionals(ctx, shopID)
	if err != nil {
		log.Fatalf("Failed to seed professionals: %v", err)
	}

	authSvc := auth.NewAuthService(ownerRepo.NewKVOwnerRepo(store), shops, config.AppConfig.TokenTTL, utils.GetLogger())
	if _, err := authSvc.Register(ctx, email, password, shopID); err != nil && !errors.Is(err, auth.ErrEmailTaken) {
		log.Fatalf("Failed to create owner: %v", err)
	}

	appts := appointmentRepo.NewKVAppointmentRepo(store)
	existing, err := appts.ListByShop(ctx, shopID)
	if err != nil {
		log.Fatalf("Failed to read appointments: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Shop %s already has %d appointments; skipping.\n", shopID, len(existing))
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	clients := []string{"Ana", "Bruno", "Caio", "Daniela", "Eduardo", "Fernanda", "Gustavo"}
	methods := models.KnownPaymentMethods
	start := time.Now().AddDate(0, 0, -6)
	created := 0

	for day := 0; day < 7; day++ {
		date := start.AddDate(0, 0, day)
		for slot := 0; slot < 3+rng.Intn(4); slot++ {
			svc := services[rng.Intn(len(services))]
			pro := models.AnyProfessional
			if rng.Intn(3) > 0 {
				pro = pros[rng.Intn(len(pros))].Name
			}
			at := time.Date(date.Year(), date.Month(), date.Day(), 9+slot, 0, 0, 0, time.Local)
			appt := models.Appointment{
				ID:               fmt.Sprintf("%d", at.UnixMilli()),
				ShopID:           shopID,
				ClientName:       clients[rng.Intn(len(clients))],
				ServiceName:      svc.Name,
				ProfessionalName: pro,
				DateTime:         at.Format(models.DateTimeLayout),
				Duration:         svc.Duration,
				Status:           models.AppointmentStatusConfirmed,
				PaymentMethod:    methods[rng.Intn(len(methods))],
				Price:            svc.Price,
				CreatedAt:        at.UTC(),
			}
			if err := appts.Append(ctx, appt); err != nil {
				log.Fatalf("Failed to insert appointment: %v", err)
			}
			created++
		}
	}

	fmt.Printf("Seeded shop %s: %d services, %d professionals, %d appointments. Owner login: %s\n",
		shopID, len(services), len(pros), created, email)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
