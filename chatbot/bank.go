package chatbot

import "regexp"

func patterns(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(expr)
	}
	return compiled
}

// buildCategories returns the FAQ bank: per-category example questions,
// canned responses and intent patterns.
func buildCategories() []category {
	return []category{
		{
			name: "appointments",
			questions: []string{
				"How do I book an appointment?",
				"Can I schedule online?",
				"How to make appointment?",
				"Book appointment",
				"Schedule visit",
			},
			responses: []string{
				"You can book an appointment by calling us at (555) 123-4567 or using our online scheduling system. Our scheduler will find the best time slot for you and your pet.",
				"Yes! You can schedule online 24/7 through our website. The system will recommend the best available times based on your pet's needs and our doctors' availability.",
				"To make an appointment, visit our website and use the 'Schedule Appointment' feature. We'll help you find the perfect time slot.",
			},
			patterns: patterns(`book`, `schedule`, `appointment`, `visit`, `come in`, `make appointment`, `set up`, `reserve`),
		},
		{
			name: "services",
			questions: []string{
				"What services do you offer?",
				"What treatments are available?",
				"Services provided",
				"What can you do for my pet?",
				"Available treatments",
			},
			responses: []string{
				"We offer comprehensive veterinary services including routine checkups, vaccinations, surgery, emergency care, dental care, grooming, and specialized treatments.",
				"Our services include: General Practice, Surgery, Emergency Care, Cardiology, Dermatology, Dental Care, Vaccinations, and Grooming.",
			},
			patterns: patterns(`service`, `treatment`, `care`, `what do you do`, `offer`, `provide`, `available`),
		},
		{
			name: "emergency",
			questions: []string{
				"Emergency care",
				"My pet is sick",
				"Urgent help needed",
				"Pet emergency",
				"Emergency vet",
			},
			responses: []string{
				"For emergencies, call our emergency line at (555) 911-VET immediately. Our emergency team is available 24/7. If it's a life-threatening situation, please come to our clinic right away.",
				"If your pet is showing signs of distress, difficulty breathing, severe injury, or unusual behavior, please contact us immediately so we can assess the urgency level.",
			},
			patterns: patterns(`emergency`, `urgent`, `sick`, `hurt`, `injured`, `not well`, `critical`, `immediate`),
		},
		{
			name: "pricing",
			questions: []string{
				"How much does it cost?",
				"What are your prices?",
				"Cost of treatment",
				"Pricing information",
				"How much for consultation?",
			},
			responses: []string{
				"Our pricing varies based on the service needed. Basic consultation starts at $75, vaccinations from $45, and surgery costs depend on the procedure. Contact us for a detailed quote based on your pet's specific needs.",
				"We offer transparent pricing with no hidden fees. Call us for personalized pricing information based on your pet's condition and required treatments.",
			},
			patterns: patterns(`cost`, `price`, `how much`, `expensive`, `fee`, `charge`, `payment`, `bill`),
		},
		{
			name: "hours",
			questions: []string{
				"What are your hours?",
				"When are you open?",
				"Operating hours",
				"Clinic hours",
				"When can I visit?",
			},
			responses: []string{
				"We're open Monday-Friday 8AM-6PM, Saturday 9AM-4PM, and Sunday 10AM-3PM. Emergency services are available 24/7, and online booking is always open.",
				"Regular hours: Mon-Fri 8AM-6PM, Sat 9AM-4PM, Sun 10AM-3PM. Emergency care is available 24/7. You can book appointments online anytime.",
			},
			patterns: patterns(`hours`, `open`, `when`, `time`, `schedule`, `available`, `closed`),
		},
		{
			name: "vaccinations",
			questions: []string{
				"Vaccination schedule",
				"When to vaccinate?",
				"Pet vaccines",
				"Vaccination requirements",
				"Immunization schedule",
			},
			responses: []string{
				"Puppies and kittens need a series of vaccinations starting at 6-8 weeks. Adult pets typically need annual boosters. We can create a personalized vaccination schedule for your pet based on their age, breed, and lifestyle.",
				"Vaccination schedules vary by pet age and species. Puppies/kittens: every 3-4 weeks until 16 weeks. Adult pets: annual boosters. Ask us for a custom schedule for your pet's specific needs.",
			},
			patterns: patterns(`vaccine`, `vaccination`, `shot`, `immunization`, `inoculation`, `preventive`),
		},
		{
			name: "grooming",
			questions: []string{
				"Grooming services",
				"Pet grooming",
				"Bathing and grooming",
				"Nail trimming",
				"Pet spa",
			},
			responses: []string{
				"We offer full grooming services including bathing, brushing, nail trimming, ear cleaning, and styling. We can recommend a grooming frequency based on your pet's breed and coat type.",
				"Our grooming services include baths, nail trims, ear cleaning, teeth brushing, and breed-specific styling.",
			},
			patterns: patterns(`groom`, `bath`, `nail`, `trim`, `clean`, `spa`, `beauty`),
		},
		{
			name: "general",
			questions: []string{
				"Hello",
				"Hi",
				"Help",
				"Information",
				"General question",
			},
			responses: []string{
				"Hello! I'm your veterinary assistant. I can help you with appointments, services, emergency care, pricing, and general pet health questions. How can I assist you today?",
				"Hi there! I'm here to help with all your veterinary needs. I can schedule appointments, answer questions about our services, and much more. What would you like to know?",
			},
			patterns: nil,
		},
	}
}
