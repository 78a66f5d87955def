// Package electricitytrading is a client for the Electricity Trading API.
//
// A Client places, updates and cancels gridpool orders, lists orders and
// public trades page by page or through iterators, and streams order and
// trade updates. Orders are validated locally before they are sent.
//
//	c, err := electricitytrading.NewClient("grpc://trading.example.com:443",
//		electricitytrading.WithAuthKey(key))
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	d, err := c.CreateGridpoolOrder(ctx, gridpoolID, order)
package electricitytrading
