package category

var catalog = []ServiceCategory{
	{ID: "electrician", Title: "Electrician", Icon: "⚡", Description: "Wiring & Repairs", Group: GroupHome},
	{ID: "plumber", Title: "Plumber", Icon: "🔧", Description: "Pipes & Fixtures", Group: GroupHome},
	{ID: "handyman", Title: "Handyman", Icon: "🔨", Description: "General Repairs", Group: GroupHome},
	{ID: "cleaner", Title: "Cleaner", Icon: "🧹", Description: "Home & Office", Group: GroupHome},
	{ID: "painter", Title: "Painter", Icon: "🎨", Description: "Interior & Exterior", Group: GroupHome},
	{ID: "carpenter", Title: "Carpenter", Icon: "🪚", Description: "Wood & Furniture", Group: GroupHome},
	{ID: "mason", Title: "Mason", Icon: "🧱", Description: "Bricks & Concrete", Group: GroupHome},
	{ID: "roofer", Title: "Roofer", Icon: "🏠", Description: "Roof Repair", Group: GroupHome},
	{ID: "welder", Title: "Welder", Icon: "🔥", Description: "Metal Work", Group: GroupHome},
	{ID: "hvac", Title: "HVAC Tech", Icon: "❄️", Description: "AC & Heating", Group: GroupHome},
	{ID: "property-mgmt", Title: "Property Manager", Icon: "🏢", Description: "Airbnb & Rentals", Group: GroupProfessional},
	{ID: "short-term-support", Title: "Hosting Support", Icon: "🔑", Description: "Short-term Rentals", Group: GroupHome},
	{ID: "computer-repair", Title: "Computer Repair", Icon: "💻", Description: "Hardware & Software", Group: GroupTech},
	{ID: "software-dev", Title: "Software Dev", Icon: "👨‍💻", Description: "Apps & Websites", Group: GroupTech},
	{ID: "phone-repair", Title: "Phone Repair", Icon: "📱", Description: "Mobile Devices", Group: GroupTech},
	{ID: "tv-repair", Title: "TV Repair", Icon: "📺", Description: "Electronics", Group: GroupTech},
	{ID: "network-setup", Title: "Network Setup", Icon: "🌐", Description: "WiFi & Internet", Group: GroupTech},
	{ID: "graphics-design", Title: "Graphics Design", Icon: "🎨", Description: "Logos & Branding", Group: GroupCreative},
	{ID: "photography", Title: "Photography", Icon: "📸", Description: "Events & Portraits", Group: GroupCreative},
	{ID: "videography", Title: "Videography", Icon: "🎥", Description: "Video Production", Group: GroupCreative},
	{ID: "music-producer", Title: "Music Producer", Icon: "🎵", Description: "Audio & Beats", Group: GroupCreative},
	{ID: "dj", Title: "DJ Services", Icon: "🎧", Description: "Events & Parties", Group: GroupCreative},
	{ID: "tutor", Title: "Tutor", Icon: "📚", Description: "Academic Help", Group: GroupProfessional},
	{ID: "freelance-writer", Title: "Freelance Writer", Icon: "✍️", Description: "Content & Articles", Group: GroupProfessional},
	{ID: "translator", Title: "Translator", Icon: "🌍", Description: "Language Services", Group: GroupProfessional},
	{ID: "accountant", Title: "Accountant", Icon: "💰", Description: "Tax & Bookkeeping", Group: GroupProfessional},
	{ID: "legal-advisor", Title: "Legal Advisor", Icon: "⚖️", Description: "Legal Consultation", Group: GroupProfessional},
	{ID: "driver", Title: "Driver", Icon: "🚗", Description: "Transportation", Group: GroupTransport},
	{ID: "delivery", Title: "Delivery", Icon: "📦", Description: "Package & Food", Group: GroupTransport},
	{ID: "moving", Title: "Moving Service", Icon: "📦", Description: "Relocation Help", Group: GroupTransport},
	{ID: "mechanic", Title: "Auto Mechanic", Icon: "🔧", Description: "Car Repair", Group: GroupTransport},
	{ID: "motorcycle-repair", Title: "Motorcycle Repair", Icon: "🏍️", Description: "Bike Maintenance", Group: GroupTransport},
	{ID: "barber", Title: "Barber", Icon: "✂️", Description: "Hair Cutting", Group: GroupPersonal},
	{ID: "hairstylist", Title: "Hair Stylist", Icon: "💇‍♀️", Description: "Hair & Beauty", Group: GroupPersonal},
	{ID: "makeup-artist", Title: "Makeup Artist", Icon: "💄", Description: "Beauty & Events", Group: GroupPersonal},
	{ID: "massage-therapist", Title: "Massage Therapist", Icon: "💆", Description: "Wellness & Relaxation", Group: GroupPersonal},
	{ID: "fitness-trainer", Title: "Fitness Trainer", Icon: "💪", Description: "Personal Training", Group: GroupPersonal},
	{ID: "chef", Title: "Personal Chef", Icon: "👨‍🍳", Description: "Cooking Services", Group: GroupFood},
	{ID: "catering", Title: "Catering", Icon: "🍽️", Description: "Event Food", Group: GroupFood},
	{ID: "baker", Title: "Baker", Icon: "🧁", Description: "Cakes & Pastries", Group: GroupFood},
	{ID: "security-guard", Title: "Security Guard", Icon: "🛡️", Description: "Property Protection", Group: GroupSecurity},
	{ID: "locksmith", Title: "Locksmith", Icon: "🔐", Description: "Lock & Key Services", Group: GroupSecurity},
	{ID: "gardener", Title: "Gardener", Icon: "🌱", Description: "Landscaping", Group: GroupOutdoor},
	{ID: "pest-control", Title: "Pest Control", Icon: "🐛", Description: "Extermination", Group: GroupOutdoor},
	{ID: "event-planner", Title: "Event Planner", Icon: "🎉", Description: "Party Organization", Group: GroupEvent},
	{ID: "decorator", Title: "Decorator", Icon: "🎈", Description: "Event Decoration", Group: GroupEvent},}
