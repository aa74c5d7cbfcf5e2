package datagen

var categories = []string{
	"Abstract Strategy", "Adventure", "Ancient", "Animals", "Bluffing",
	"Card Game", "City Building", "Civilization", "Deduction", "Dice",
	"Economic", "Exploration", "Fantasy", "Farming", "Horror",
	"Medieval", "Negotiation", "Party Game", "Science Fiction", "Wargame",
}

var mechanics = []string{
	"Action Points", "Area Control / Area Influence", "Auction/Bidding",
	"Cooperative Play", "Deck, Bag, and Pool Building", "Dice Rolling",
	"Drafting", "Engine Building", "Grid Movement", "Hand Management",
	"Hexagon Grid", "Modular Board", "Network and Route Building",
	"Pattern Building", "Pick-up and Deliver", "Push Your Luck",
	"Set Collection", "Simultaneous Action Selection", "Tile Placement",
	"Trading", "Variable Player Powers", "Variable Set-up",
	"Voting", "Worker Placement", "Roll / Spin and Move",
}

var publishers = []string{
	"Alderac Entertainment Group", "Asmodee", "Czech Games Edition",
	"Days of Wonder", "Fantasy Flight Games", "Hans im Glück", "Kosmos",
	"Lookout Games", "Plan B Games", "Queen Games", "Ravensburger",
	"Rio Grande Games", "Stonemaier Games", "Z-Man Games", "(Self-Published)",
}

var adjectives = []string{
	"Ancient", "Burning", "Crimson", "Distant", "Emerald", "Forgotten",
	"Golden", "Hidden", "Iron", "Lost", "Northern", "Painted", "Quiet",
	"Rising", "Silver", "Sunken", "Twilight", "Wandering", "Wild", "Young",
}

var nouns = []string{
	"Archipelago", "Bazaar", "Canals", "Citadel", "Dominion", "Empires",
	"Expedition", "Frontier", "Gardens", "Harbor", "Kingdoms", "Lanterns",
	"Orchard", "Outpost", "Railways", "Realms", "Spires", "Tides",
	"Vineyards", "Voyages",
}
