package dataset

// SampleCatalog 返回内置的样例目录：27 种常见食材（营养为每 100g）、
// 24 道菜谱、10 个用户对前 15 道菜谱的评分。
// 每次调用返回新的副本，调用方可安全修改后再构建数据集。
func SampleCatalog() *Catalog {
	return &Catalog{
		Ingredients: []IngredientSpec{
			{Name: "chicken breast", Nutrition: []float64{31, 0, 3.6, 165, 0}, Category: "protein_meat"},
			{Name: "salmon", Nutrition: []float64{25, 0, 13, 206, 0}, Category: "protein_seafood"},
			{Name: "eggs", Nutrition: []float64{13, 1.1, 11, 155, 0}, Category: "protein_egg"},
			{Name: "tofu", Nutrition: []float64{8, 2, 4, 70, 1}, Category: "protein_plant"},
			{Name: "beef", Nutrition: []float64{26, 0, 15, 250, 0}, Category: "protein_meat"},
			{Name: "rice", Nutrition: []float64{2.7, 28, 0.3, 130, 0.4}, Category: "grain"},
			{Name: "pasta", Nutrition: []float64{5, 25, 0.9, 131, 1.8}, Category: "grain"},
			{Name: "bread", Nutrition: []float64{9, 49, 3.2, 265, 2.7}, Category: "grain"},
			{Name: "quinoa", Nutrition: []float64{4.4, 21, 1.9, 120, 2.8}, Category: "grain"},
			{Name: "oats", Nutrition: []float64{13, 67, 7, 389, 11}, Category: "grain"},
			{Name: "broccoli", Nutrition: []float64{2.8, 7, 0.4, 34, 2.6}, Category: "vegetable"},
			{Name: "spinach", Nutrition: []float64{2.9, 3.6, 0.4, 23, 2.2}, Category: "vegetable"},
			{Name: "carrots", Nutrition: []float64{0.9, 10, 0.2, 41, 2.8}, Category: "vegetable"},
			{Name: "tomatoes", Nutrition: []float64{0.9, 3.9, 0.2, 18, 1.2}, Category: "vegetable"},
			{Name: "bell pepper", Nutrition: []float64{1, 6, 0.3, 31, 2.1}, Category: "vegetable"},
			{Name: "milk", Nutrition: []float64{3.4, 5, 1, 42, 0}, Category: "dairy"},
			{Name: "cheese", Nutrition: []float64{25, 1.3, 33, 402, 0}, Category: "dairy"},
			{Name: "yogurt", Nutrition: []float64{10, 3.6, 0.4, 59, 0}, Category: "dairy"},
			{Name: "butter", Nutrition: []float64{0.9, 0.1, 81, 717, 0}, Category: "dairy"},
			{Name: "olive oil", Nutrition: []float64{0, 0, 100, 884, 0}, Category: "fat"},
			{Name: "avocado", Nutrition: []float64{2, 9, 15, 160, 7}, Category: "fat"},
			{Name: "almonds", Nutrition: []float64{21, 22, 50, 579, 12}, Category: "fat"},
			{Name: "peanut butter", Nutrition: []float64{25, 20, 50, 588, 6}, Category: "fat"},
			{Name: "banana", Nutrition: []float64{1.1, 23, 0.3, 89, 2.6}, Category: "fruit"},
			{Name: "apple", Nutrition: []float64{0.3, 14, 0.2, 52, 2.4}, Category: "fruit"},
			{Name: "orange", Nutrition: []float64{0.9, 12, 0.1, 47, 2.4}, Category: "fruit"},
			{Name: "strawberries", Nutrition: []float64{0.7, 8, 0.3, 32, 2}, Category: "fruit"},
		},
		Recipes: []RecipeSpec{
			{ID: 1, Name: "Chicken Stir Fry", Cuisine: "Asian", Difficulty: "easy",
				Ingredients: []string{"chicken", "vegetables", "soy sauce", "ginger"}, Features: []float64{20, 2, 3}},
			{ID: 2, Name: "Spaghetti Carbonara", Cuisine: "Italian", Difficulty: "medium",
				Ingredients: []string{"pasta", "eggs", "bacon", "cheese"}, Features: []float64{25, 3, 1}},
			{ID: 3, Name: "Greek Salad", Cuisine: "Mediterranean", Difficulty: "easy",
				Ingredients: []string{"tomatoes", "cucumber", "feta", "olives"}, Features: []float64{10, 1, 2}},
			{ID: 4, Name: "Beef Tacos", Cuisine: "Mexican", Difficulty: "easy",
				Ingredients: []string{"beef", "tortillas", "cheese", "salsa"}, Features: []float64{30, 2, 4}},
			{ID: 5, Name: "Mushroom Risotto", Cuisine: "Italian", Difficulty: "hard",
				Ingredients: []string{"rice", "mushrooms", "wine", "cheese"}, Features: []float64{45, 4, 1}},
			{ID: 6, Name: "Caesar Salad", Cuisine: "American", Difficulty: "easy",
				Ingredients: []string{"lettuce", "croutons", "cheese", "dressing"}, Features: []float64{15, 1, 1}},
			{ID: 7, Name: "Pad Thai", Cuisine: "Thai", Difficulty: "medium",
				Ingredients: []string{"noodles", "shrimp", "peanuts", "lime"}, Features: []float64{35, 3, 4}},
			{ID: 8, Name: "Margherita Pizza", Cuisine: "Italian", Difficulty: "easy",
				Ingredients: []string{"dough", "tomato sauce", "mozzarella", "basil"}, Features: []float64{20, 2, 1}},
			{ID: 9, Name: "Chicken Curry", Cuisine: "Indian", Difficulty: "medium",
				Ingredients: []string{"chicken", "curry powder", "coconut milk", "rice"}, Features: []float64{40, 3, 5}},
			{ID: 10, Name: "Quinoa Bowl", Cuisine: "Fusion", Difficulty: "easy",
				Ingredients: []string{"quinoa", "vegetables", "avocado", "chickpeas"}, Features: []float64{25, 2, 2}},
			{ID: 11, Name: "French Onion Soup", Cuisine: "French", Difficulty: "medium",
				Ingredients: []string{"onions", "broth", "cheese", "bread"}, Features: []float64{60, 3, 1}},
			{ID: 12, Name: "Fish Tacos", Cuisine: "Mexican", Difficulty: "easy",
				Ingredients: []string{"fish", "tortillas", "cabbage", "lime"}, Features: []float64{25, 2, 3}},
			{ID: 13, Name: "Vegetable Stir Fry", Cuisine: "Asian", Difficulty: "easy",
				Ingredients: []string{"vegetables", "tofu", "soy sauce", "garlic"}, Features: []float64{15, 2, 3}},
			{ID: 14, Name: "Chocolate Cake", Cuisine: "Dessert", Difficulty: "hard",
				Ingredients: []string{"flour", "chocolate", "eggs", "sugar"}, Features: []float64{90, 4, 0}},
			{ID: 15, Name: "Grilled Salmon", Cuisine: "Seafood", Difficulty: "easy",
				Ingredients: []string{"salmon", "lemon", "herbs", "olive oil"}, Features: []float64{20, 2, 1}},
			{ID: 16, Name: "Spaghetti Marinara", Cuisine: "Italian", Difficulty: "easy",
				Ingredients: []string{"pasta", "tomato sauce", "garlic", "basil", "olive oil"}, Features: []float64{25, 2, 1}},
			{ID: 17, Name: "Lasagna", Cuisine: "Italian", Difficulty: "hard",
				Ingredients: []string{"pasta", "tomato sauce", "mozzarella", "beef"}, Features: []float64{70, 4, 1}},
			{ID: 18, Name: "Caprese Salad", Cuisine: "Italian", Difficulty: "easy",
				Ingredients: []string{"tomatoes", "mozzarella", "basil", "olive oil"}, Features: []float64{10, 1, 0}},
			{ID: 19, Name: "Beef Burrito", Cuisine: "Mexican", Difficulty: "medium",
				Ingredients: []string{"beef", "tortillas", "beans", "rice", "salsa"}, Features: []float64{30, 2, 4}},
			{ID: 20, Name: "Miso Soup", Cuisine: "Japanese", Difficulty: "easy",
				Ingredients: []string{"tofu", "miso paste", "seaweed", "scallions"}, Features: []float64{15, 1, 1}},
			{ID: 21, Name: "Hummus Plate", Cuisine: "Mediterranean", Difficulty: "easy",
				Ingredients: []string{"chickpeas", "tahini", "olive oil", "garlic", "pita bread"}, Features: []float64{10, 1, 1}},
			{ID: 22, Name: "Butter Chicken", Cuisine: "Indian", Difficulty: "medium",
				Ingredients: []string{"chicken", "butter", "tomato sauce", "cream", "garam masala"}, Features: []float64{50, 3, 4}},
			{ID: 23, Name: "Fried Rice", Cuisine: "Asian", Difficulty: "easy",
				Ingredients: []string{"rice", "eggs", "soy sauce", "vegetables", "scallions"}, Features: []float64{20, 2, 2}},
			{ID: 24, Name: "Pancakes", Cuisine: "American", Difficulty: "easy",
				Ingredients: []string{"flour", "eggs", "milk", "butter", "maple syrup"}, Features: []float64{20, 2, 0}},
		},
		Ratings: []RatingSpec{
			{UserID: 1, Ratings: map[int]float64{1: 5, 3: 4, 5: 3, 8: 4, 10: 5, 13: 4, 15: 5}},
			{UserID: 2, Ratings: map[int]float64{2: 5, 4: 4, 5: 5, 8: 5, 11: 4}},
			{UserID: 3, Ratings: map[int]float64{1: 4, 3: 5, 6: 5, 10: 5, 12: 4, 13: 5, 15: 5}},
			{UserID: 4, Ratings: map[int]float64{2: 4, 4: 5, 7: 5, 9: 5, 12: 5}},
			{UserID: 5, Ratings: map[int]float64{1: 3, 2: 5, 5: 5, 8: 5, 11: 5, 14: 5}},
			{UserID: 6, Ratings: map[int]float64{1: 5, 3: 5, 6: 5, 10: 5, 12: 5, 13: 5, 15: 5}},
			{UserID: 7, Ratings: map[int]float64{2: 4, 4: 5, 7: 5, 8: 4, 9: 5, 12: 4}},
			{UserID: 8, Ratings: map[int]float64{2: 5, 5: 5, 7: 4, 8: 5, 11: 5, 14: 4}},
			{UserID: 9, Ratings: map[int]float64{1: 4, 3: 5, 4: 4, 6: 5, 10: 5, 12: 5, 13: 5, 15: 5}},
			{UserID: 10, Ratings: map[int]float64{4: 5, 7: 5, 9: 5, 12: 5, 13: 4}},
		},
	}
}
