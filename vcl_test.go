package varnish_test

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	varnish "github.com/all-ride/ride-lib-varnish"
)

// vclLister scripts vcl.list with a fixed body and answers everything
// else with a plain 200.
func vclLister(listing string) adminHandler {
	return func(command string) reply {
		if command == "vcl.list" {
			return reply{status: 200, body: listing}
		}

		if strings.HasPrefix(command, "vcl.show ") {
			return reply{status: 200, body: "vcl 4.0;\nbackend default { .host = \"127.0.0.1\"; }\n"}
		}

		return reply{status: 200}
	}
}

var _ = Describe("VCL", func() {
	Describe("VCLList", func() {
		Describe("Active()", func() {
			It("returns the active configuration", func() {
				list := varnish.VCLList{
					{Name: "old", Active: false},
					{Name: "boot", Active: true},
				}

				name, ok := list.Active()
				Expect(ok).To(BeTrue())
				Expect(name).To(Equal("boot"))
			})

			It("reports when nothing is active", func() {
				list := varnish.VCLList{{Name: "old"}, {Name: "older"}}

				_, ok := list.Active()
				Expect(ok).To(BeFalse())
			})
		})

		Describe("NextName()", func() {
			It("counts past the highest numeric suffix", func() {
				list := varnish.VCLList{
					{Name: "load1"},
					{Name: "load3"},
					{Name: "other"},
				}

				Expect(list.NextName("load")).To(Equal("load4"))
			})

			It("starts at 1 on an empty list", func() {
				Expect(varnish.VCLList{}.NextName("load")).To(Equal("load1"))
			})

			It("ignores names whose suffix is not numeric", func() {
				list := varnish.VCLList{{Name: "loadx"}, {Name: "load"}}

				Expect(list.NextName("load")).To(Equal("load1"))
			})

			It("honours a custom prefix", func() {
				list := varnish.VCLList{{Name: "blue9"}, {Name: "load7"}}

				Expect(list.NextName("blue")).To(Equal("blue10"))
			})

			It("falls back to the conventional prefix", func() {
				Expect(varnish.VCLList{}.NextName("")).To(Equal(varnish.DefaultVCLPrefix + "1"))
			})
		})
	})

	Describe("ListVCLs()", func() {
		It("parses states and names", func() {
			server := startAdminServer(adminServerOptions{handler: vclLister(
				"active          auto/warm          0    boot\n" +
					"available       auto/cold          0    offload\n\n")})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			list, err := admin.ListVCLs()
			Expect(err).To(Succeed())
			Expect(list).To(Equal(varnish.VCLList{
				{Name: "boot", Active: true},
				{Name: "offload", Active: false},
			}))
		})
	})

	Describe("ActiveVCL()", func() {
		It("fetches the source of the active configuration", func() {
			server := startAdminServer(adminServerOptions{handler: vclLister(
				"available auto/cold 0 old\nactive auto/warm 0 boot\n")})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			source, found, err := admin.ActiveVCL()
			Expect(err).To(Succeed())
			Expect(found).To(BeTrue())
			Expect(source).To(HavePrefix("vcl 4.0;"))
			Expect(server.Commands()).To(ContainElement("vcl.show boot"))
		})

		It("does not fetch any source when nothing is active", func() {
			server := startAdminServer(adminServerOptions{handler: vclLister(
				"available auto/cold 0 old\navailable auto/cold 0 older\n")})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			source, found, err := admin.ActiveVCL()
			Expect(err).To(Succeed())
			Expect(found).To(BeFalse())
			Expect(source).To(BeEmpty())
			Expect(server.Commands()).NotTo(ContainElement(HavePrefix("vcl.show")))
		})
	})

	Describe("GetVCL()", func() {
		It("asks for the named configuration", func() {
			server := startAdminServer(adminServerOptions{handler: vclLister("")})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			source, err := admin.GetVCL("boot")
			Expect(err).To(Succeed())
			Expect(source).To(HavePrefix("vcl 4.0;"))
			Expect(server.Commands()).To(ContainElement("vcl.show boot"))
		})
	})

	Describe("LoadVCLFromFile()", func() {
		It("loads under the given name", func() {
			server := startAdminServer(adminServerOptions{})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			name, err := admin.LoadVCLFromFile("/etc/varnish/default.vcl", "tuesday")
			Expect(err).To(Succeed())
			Expect(name).To(Equal("tuesday"))
			Expect(server.Commands()).To(ContainElement("vcl.load tuesday /etc/varnish/default.vcl"))
		})

		It("generates a name from the existing configurations", func() {
			server := startAdminServer(adminServerOptions{handler: vclLister(
				"available auto/warm 0 load1\navailable auto/warm 0 load3\n")})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			name, err := admin.LoadVCLFromFile("/etc/varnish/default.vcl", "")
			Expect(err).To(Succeed())
			Expect(name).To(Equal("load4"))
			Expect(server.Commands()).To(ContainElement("vcl.load load4 /etc/varnish/default.vcl"))
		})
	})

	Describe("LoadVCLFromConfiguration()", func() {
		It("quotes the source for the wire", func() {
			server := startAdminServer(adminServerOptions{})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			configuration := `backend default { .host = "127.0.0.1"; }`
			name, err := admin.LoadVCLFromConfiguration(configuration, "inline1")
			Expect(err).To(Succeed())
			Expect(name).To(Equal("inline1"))
			Expect(server.Commands()).To(ContainElement(
				`vcl.inline inline1 "backend default { .host = \"127.0.0.1\"; }"`))
		})

		It("escapes backslashes as well as quotes", func() {
			server := startAdminServer(adminServerOptions{})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			_, err := admin.LoadVCLFromConfiguration(`a\b"c`, "inline2")
			Expect(err).To(Succeed())
			Expect(server.Commands()).To(ContainElement(`vcl.inline inline2 "a\\b\"c"`))
		})
	})

	Describe("UseVCL()", func() {
		It("activates the named configuration", func() {
			server := startAdminServer(adminServerOptions{})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			Expect(admin.UseVCL("boot")).To(Succeed())
			Expect(server.Commands()).To(ContainElement("vcl.use boot"))
		})
	})

	Describe("LoadAndUseVCLFromFile()", func() {
		It("loads first and activates second", func() {
			server := startAdminServer(adminServerOptions{})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			name, err := admin.LoadAndUseVCLFromFile("/etc/varnish/default.vcl", "tuesday")
			Expect(err).To(Succeed())
			Expect(name).To(Equal("tuesday"))
			Expect(server.Commands()).To(Equal([]string{
				"vcl.load tuesday /etc/varnish/default.vcl",
				"vcl.use tuesday",
			}))
		})
	})

	Describe("DiscardVCL()", func() {
		It("unloads the named configuration", func() {
			server := startAdminServer(adminServerOptions{})
			defer server.Close()

			admin := server.Admin("")
			defer admin.Quit()

			Expect(admin.DiscardVCL("old")).To(Succeed())
			Expect(server.Commands()).To(ContainElement("vcl.discard old"))
		})
	})
})
