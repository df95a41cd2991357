package controllers

import (
	"github.com/pawcare/vet-scheduler/chatbot"
	"github.com/pawcare/vet-scheduler/inventory"
	"github.com/pawcare/vet-scheduler/scheduler"
)

// Shared handler dependencies, wired once at startup.
var (
	Sched   *scheduler.Scheduler
	Store   scheduler.SlotStore
	Models  *scheduler.ModelHolder
	Tracker *inventory.Tracker
	FAQ     *chatbot.Engine
)

// Setup injects the shared dependencies used by all handlers.
func Setup(s *scheduler.Scheduler, store scheduler.SlotStore, models *scheduler.ModelHolder, tracker *inventory.Tracker, faq *chatbot.Engine) {
	Sched = s
	Store = store
	Models = models
	Tracker = tracker
	FAQ = faq
}
