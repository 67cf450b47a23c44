// 店頭クライアント。カタログを見てカートに積み、ログインして注文を確定する。
// カートはRedisに永続化され、再起動しても消えない。
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"app/internal/advisor"
	"app/internal/cart"
	"app/internal/catalog"
	"app/internal/storeclient"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type session struct {
	store    *cart.Store
	checkout *storeclient.Checkout
	client   *storeclient.Client
	token    string
	logger   zerolog.Logger
}

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	apiURL := os.Getenv("STORE_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	namespace := os.Getenv("CART_NAMESPACE")
	if namespace == "" {
		namespace = "storefront"
	}

	//Redisがあれば永続カート、無ければインメモリ
	var persister cart.Persister = cart.NewMemoryPersister()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		persister = cart.NewRedisPersister(rdb)
		logger.Info().Str("addr", addr).Msg("cart persistence enabled")
	}

	ctx := context.Background()

	store := cart.New(namespace, persister)
	if err := store.Rehydrate(ctx); err != nil {
		logger.Warn().Err(err).Msg("cart rehydrate failed, starting empty")
	}

	client := storeclient.New(apiURL, nil)

	s := &session{
		store:    store,
		checkout: storeclient.NewCheckout(store, client),
		client:   client,
		logger:   logger,
	}

	fmt.Println("mountain bike store — type 'help' for commands")
	s.repl(ctx)
}

func (s *session) repl(ctx context.Context) {
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			printHelp()
		case "products":
			s.listProducts(args)
		case "add":
			s.addItem(ctx, args)
		case "rm":
			s.removeItem(ctx, args)
		case "qty":
			s.updateQuantity(ctx, args)
		case "cart":
			s.showCart()
		case "clear":
			if err := s.store.Clear(ctx); err != nil {
				fmt.Println("error:", err)
			}
		case "login":
			s.login(ctx, args)
		case "logout":
			s.logout(ctx)
		case "checkout":
			s.doCheckout(ctx, sc)
		case "orders":
			s.showOrders(ctx)
		case "ask":
			fmt.Println(advisor.GenerateResponse(strings.Join(args, " ")))
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  products [category]   show the catalog
  add <product-id>      add one to the cart
  rm <product-id>       remove a line from the cart
  qty <product-id> <n>  set line quantity
  cart                  show cart and total
  clear                 empty the cart
  login <email> <pass>  sign in
  logout                sign out
  checkout              place the order
  orders                show my order history
  ask <question>        ask the parts advisor
  quit`)
}

func (s *session) listProducts(args []string) {
	category := ""
	if len(args) > 0 {
		category = args[0]
	}
	for _, p := range catalog.ListByCategory(category) {
		fmt.Printf("%-8s %-32s $%-9s %s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Category)
	}
}

func (s *session) addItem(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: add <product-id>")
		return
	}
	p, ok := catalog.FindByID(args[0])
	if !ok {
		fmt.Println("no such product:", args[0])
		return
	}
	if err := s.store.AddItem(ctx, cart.Product{ID: p.ID, Name: p.Name, Image: p.Image, Price: p.Price}); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("added %s\n", p.Name)
}

func (s *session) removeItem(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: rm <product-id>")
		return
	}
	if err := s.store.RemoveItem(ctx, args[0]); err != nil {
		fmt.Println("error:", err)
	}
}

func (s *session) updateQuantity(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: qty <product-id> <n>")
		return
	}
	n, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Println("quantity must be a number")
		return
	}
	if err := s.store.UpdateQuantity(ctx, args[0], n); err != nil {
		fmt.Println("error:", err)
	}
}

func (s *session) showCart() {
	items := s.store.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, it := range items {
		fmt.Printf("%-8s %-32s $%-9s x%d\n", it.ID, it.Name, it.Price.StringFixed(2), it.Quantity)
	}
	fmt.Printf("total: $%s\n", s.store.Total().StringFixed(2))
}

func (s *session) login(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("usage: login <email> <password>")
		return
	}
	resp, err := s.client.Login(ctx, args[0], args[1])
	if err != nil {
		fmt.Println("login failed:", err)
		return
	}
	s.token = resp.Token
	fmt.Printf("signed in as %s\n", resp.User.Email)
}

func (s *session) logout(ctx context.Context) {
	if s.token == "" {
		fmt.Println("not signed in")
		return
	}
	if err := s.client.Logout(ctx, s.token); err != nil {
		fmt.Println("logout failed:", err)
		return
	}
	s.token = ""
	fmt.Println("signed out")
}

func (s *session) doCheckout(ctx context.Context, sc *bufio.Scanner) {
	if s.token == "" {
		fmt.Println("sign in first")
		return
	}
	if len(s.store.Items()) == 0 {
		fmt.Println("cart is empty")
		return
	}

	shipping := storeclient.ShippingDetails{
		FirstName: prompt(sc, "first name"),
		LastName:  prompt(sc, "last name"),
		Email:     prompt(sc, "email"),
		Address:   prompt(sc, "address"),
		City:      prompt(sc, "city"),
		State:     prompt(sc, "state"),
		ZipCode:   prompt(sc, "zip code"),
		Country:   prompt(sc, "country"),
	}

	resp, err := s.checkout.Submit(ctx, s.token, shipping)
	if err != nil {
		fmt.Println("checkout failed:", err)
		return
	}
	fmt.Printf("%s (order %s, status %s, total $%s)\n",
		resp.Message, resp.ID, resp.Status, resp.Total.StringFixed(2))
}

func (s *session) showOrders(ctx context.Context) {
	if s.token == "" {
		fmt.Println("sign in first")
		return
	}
	me, err := s.client.FetchProfile(ctx, s.token)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(me.Orders) == 0 {
		fmt.Println("no orders yet")
		return
	}
	for _, o := range me.Orders {
		fmt.Printf("%s  %s  $%s  %s\n",
			o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Total.StringFixed(2), o.Status)
		for _, it := range o.Items {
			fmt.Printf("    %s x%d  $%s\n", it.Product.Name, it.Quantity, it.Price.StringFixed(2))
		}
	}
}

func prompt(sc *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}
