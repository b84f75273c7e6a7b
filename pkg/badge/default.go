package badge

// eagleRequired is the subset of badges that count toward the
// Eagle-required classification, including the limited-choice
// alternates (e.g. Hiking/Cycling/Swimming, Lifesaving/Emergency
// Preparedness, Sustainability/Environmental Science).
var eagleRequired = []string{
	"Camping",
	"Citizenship in Society",
	"Citizenship in the Community",
	"Citizenship in the Nation",
	"Citizenship in the World",
	"Communication",
	"Cooking",
	"Cycling",
	"Emergency Preparedness",
	"Environmental Science",
	"Family Life",
	"First Aid",
	"Hiking",
	"Lifesaving",
	"Personal Fitness",
	"Personal Management",
	"Sustainability",
	"Swimming",
}

var defaultNames = []string{
	"American Business",
	"American Cultures",
	"American Heritage",
	"American Labor",
	"Animal Science",
	"Animation",
	"Archaeology",
	"Archery",
	"Architecture",
	"Art",
	"Astronomy",
	"Athletics",
	"Automotive Maintenance",
	"Aviation",
	"Backpacking",
	"Basketry",
	"Bird Study",
	"Bugling",
	"Camping",
	"Canoeing",
	"Chemistry",
	"Chess",
	"Citizenship in Society",
	"Citizenship in the Community",
	"Citizenship in the Nation",
	"Citizenship in the World",
	"Climbing",
	"Coin Collecting",
	"Collections",
	"Communication",
	"Composite Materials",
	"Cooking",
	"Crime Prevention",
	"Cycling",
	"Dentistry",
	"Digital Technology",
	"Disabilities Awareness",
	"Dog Care",
	"Drafting",
	"Electricity",
	"Electronics",
	"Emergency Preparedness",
	"Energy",
	"Engineering",
	"Entrepreneurship",
	"Environmental Science",
	"Exploration",
	"Family Life",
	"Farm Mechanics",
	"Fingerprinting",
	"Fire Safety",
	"First Aid",
	"Fish and Wildlife Management",
	"Fishing",
	"Fly-Fishing",
	"Forestry",
	"Game Design",
	"Gardening",
	"Genealogy",
	"Geocaching",
	"Geology",
	"Golf",
	"Graphic Arts",
	"Health Care Professions",
	"Hiking",
	"Home Repairs",
	"Horsemanship",
	"Indian Lore",
	"Insect Study",
	"Inventing",
	"Journalism",
	"Kayaking",
	"Landscape Architecture",
	"Law",
	"Leatherwork",
	"Lifesaving",
	"Mammal Study",
	"Medicine",
	"Metalwork",
	"Mining in Society",
	"Model Design and Building",
	"Motorboating",
	"Moviemaking",
	"Music",
	"Nature",
	"Nuclear Science",
	"Oceanography",
	"Orienteering",
	"Painting",
	"Personal Fitness",
	"Personal Management",
	"Pets",
	"Photography",
	"Pioneering",
	"Plant Science",
	"Plumbing",
	"Pottery",
	"Programming",
	"Public Health",
	"Public Speaking",
	"Pulp and Paper",
	"Radio",
	"Railroading",
	"Reading",
	"Reptile and Amphibian Study",
	"Rifle Shooting",
	"Robotics",
	"Rowing",
	"Safety",
	"Salesmanship",
	"Scholarship",
	"Scouting Heritage",
	"Scuba Diving",
	"Sculpture",
	"Search and Rescue",
	"Shotgun Shooting",
	"Signs, Signals, and Codes",
	"Skating",
	"Small-Boat Sailing",
	"Snow Sports",
	"Soil and Water Conservation",
	"Space Exploration",
	"Sports",
	"Stamp Collecting",
	"Surveying",
	"Sustainability",
	"Swimming",
	"Textile",
	"Theater",
	"Traffic Safety",
	"Truck Transportation",
	"Veterinary Medicine",
	"Water Sports",
	"Weather",
	"Welding",
	"Whitewater",
	"Wilderness Survival",
	"Wood Carving",
	"Woodwork",
}

// Default returns the built-in universe of current merit badges.
func Default() (*Universe, error) {
	return New(defaultNames, eagleRequired)
}
