package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/pawcare/vet-scheduler/chatbot"
	"github.com/pawcare/vet-scheduler/controllers"
	"github.com/pawcare/vet-scheduler/cron"
	"github.com/pawcare/vet-scheduler/db"
	"github.com/pawcare/vet-scheduler/inventory"
	"github.com/pawcare/vet-scheduler/redis"
	"github.com/pawcare/vet-scheduler/routes"
	"github.com/pawcare/vet-scheduler/scheduler"
)

const (
	trainingExamples = 2000
	trainingSeed     = 42
	slotSeedDays     = 30
)

func main() {
	db.Init()
	db.Migrate()
	db.SeedDoctors()
	redis.InitRedis()

	store := scheduler.NewGormStore(db.DB)
	holder := scheduler.NewModelHolder()
	initModel(holder)
	seedSlots(store)

	sched := scheduler.New(store, holder, scheduler.NewScoringPolicy(scheduler.DefaultScoringConfig()))
	tracker := inventory.NewTracker(db.DB)
	faq := chatbot.NewEngine()
	controllers.Setup(sched, store, holder, tracker, faq)

	cron.StartCronJobs()

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("PawCare Veterinary Scheduler")
	})
	routes.SetupScheduleRoutes(app)
	routes.SetupSlotRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupChatbotRoutes(app)
	routes.SetupInventoryRoutes(app)
	routes.SetupAnalyticsRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}

// initModel loads the saved ranking model, or trains one from synthetic
// history on first boot.
func initModel(holder *scheduler.ModelHolder) {
	modelDir := os.Getenv("MODEL_DIR")
	if modelDir == "" {
		modelDir = "."
	}
	modelStore := scheduler.NewFileModelStore(modelDir)

	if modelStore.Exists() {
		model, err := modelStore.Load()
		if err == nil {
			holder.Swap(model)
			log.Println("✅ Ranking model loaded from disk!")
			return
		}
		log.Printf("Failed to load saved model, retraining: %v", err)
	}

	gen := scheduler.NewDataGenerator(trainingSeed)
	model, _, err := scheduler.TrainFromHistory(gen, modelStore, trainingExamples, trainingSeed)
	if err != nil {
		log.Fatal("Failed to train ranking model: ", err)
	}
	holder.Swap(model)
	log.Println("✅ Ranking model trained and saved!")
}

// seedSlots fills the slot inventory when no upcoming slots exist.
func seedSlots(store scheduler.SlotStore) {
	upcoming, err := store.AvailableSlots(scheduler.SlotFilter{From: time.Now()})
	if err != nil {
		log.Fatal("Failed to check slot inventory: ", err)
	}
	if len(upcoming) > 0 {
		return
	}

	gen := scheduler.NewDataGenerator(time.Now().UnixNano())
	created, err := gen.SeedSlots(store, slotSeedDays)
	if err != nil {
		log.Fatal("Failed to seed slots: ", err)
	}
	log.Printf("✅ Seeded %d availability slots!", created)
}
